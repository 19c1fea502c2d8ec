package marketv1

import (
	"context"

	"google.golang.org/grpc"
)

// MarketClient is the typed client for MarketServer. Every call is sent with
// the JSON content-subtype.
type MarketClient struct {
	cc grpc.ClientConnInterface
}

func NewMarketClient(cc grpc.ClientConnInterface) *MarketClient {
	return &MarketClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MarketClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterRequest, RegisterResponse](ctx, c.cc, MethodRegister, in, opts...)
}

func (c *MarketClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginRequest, LoginResponse](ctx, c.cc, MethodLogin, in, opts...)
}

func (c *MarketClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, MethodPing, in, opts...)
}

func (c *MarketClient) ListCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListCandidatesResponse, error) {
	return invoke[ListCandidatesRequest, ListCandidatesResponse](ctx, c.cc, MethodListCandidates, in, opts...)
}

func (c *MarketClient) ApprovedIDs(ctx context.Context, in *ApprovedIDsRequest, opts ...grpc.CallOption) (*ApprovedIDsResponse, error) {
	return invoke[ApprovedIDsRequest, ApprovedIDsResponse](ctx, c.cc, MethodApprovedIDs, in, opts...)
}

func (c *MarketClient) FindPreferences(ctx context.Context, in *FindPreferencesRequest, opts ...grpc.CallOption) (*FindPreferencesResponse, error) {
	return invoke[FindPreferencesRequest, FindPreferencesResponse](ctx, c.cc, MethodFindPreferences, in, opts...)
}

func (c *MarketClient) UpsertPreference(ctx context.Context, in *UpsertPreferenceRequest, opts ...grpc.CallOption) (*UpsertPreferenceResponse, error) {
	return invoke[UpsertPreferenceRequest, UpsertPreferenceResponse](ctx, c.cc, MethodUpsertPreference, in, opts...)
}

func (c *MarketClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceRequest, GetBalanceResponse](ctx, c.cc, MethodGetBalance, in, opts...)
}

func (c *MarketClient) SetBalance(ctx context.Context, in *SetBalanceRequest, opts ...grpc.CallOption) (*SetBalanceResponse, error) {
	return invoke[SetBalanceRequest, SetBalanceResponse](ctx, c.cc, MethodSetBalance, in, opts...)
}

func (c *MarketClient) GetGrant(ctx context.Context, in *GetGrantRequest, opts ...grpc.CallOption) (*GetGrantResponse, error) {
	return invoke[GetGrantRequest, GetGrantResponse](ctx, c.cc, MethodGetGrant, in, opts...)
}

func (c *MarketClient) PutGrant(ctx context.Context, in *PutGrantRequest, opts ...grpc.CallOption) (*PutGrantResponse, error) {
	return invoke[PutGrantRequest, PutGrantResponse](ctx, c.cc, MethodPutGrant, in, opts...)
}

func (c *MarketClient) ListGrants(ctx context.Context, in *ListGrantsRequest, opts ...grpc.CallOption) (*ListGrantsResponse, error) {
	return invoke[ListGrantsRequest, ListGrantsResponse](ctx, c.cc, MethodListGrants, in, opts...)
}

func (c *MarketClient) RecordUsage(ctx context.Context, in *RecordUsageRequest, opts ...grpc.CallOption) (*RecordUsageResponse, error) {
	return invoke[RecordUsageRequest, RecordUsageResponse](ctx, c.cc, MethodRecordUsage, in, opts...)
}

func (c *MarketClient) PhotoURLs(ctx context.Context, in *PhotoURLsRequest, opts ...grpc.CallOption) (*PhotoURLsResponse, error) {
	return invoke[PhotoURLsRequest, PhotoURLsResponse](ctx, c.cc, MethodPhotoURLs, in, opts...)
}
