package marketv1

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "talentledger.market.v1.MarketService"

const (
	MethodRegister         = "Register"
	MethodLogin            = "Login"
	MethodPing             = "Ping"
	MethodListCandidates   = "ListCandidates"
	MethodApprovedIDs      = "ApprovedIDs"
	MethodFindPreferences  = "FindPreferences"
	MethodUpsertPreference = "UpsertPreference"
	MethodGetBalance       = "GetBalance"
	MethodSetBalance       = "SetBalance"
	MethodGetGrant         = "GetGrant"
	MethodPutGrant         = "PutGrant"
	MethodListGrants       = "ListGrants"
	MethodRecordUsage      = "RecordUsage"
	MethodPhotoURLs        = "PhotoURLs"
)

// FullMethod returns the "/service/method" path used by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MarketServer is implemented by the server.
type MarketServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error)
	ApprovedIDs(context.Context, *ApprovedIDsRequest) (*ApprovedIDsResponse, error)
	FindPreferences(context.Context, *FindPreferencesRequest) (*FindPreferencesResponse, error)
	UpsertPreference(context.Context, *UpsertPreferenceRequest) (*UpsertPreferenceResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	SetBalance(context.Context, *SetBalanceRequest) (*SetBalanceResponse, error)
	GetGrant(context.Context, *GetGrantRequest) (*GetGrantResponse, error)
	PutGrant(context.Context, *PutGrantRequest) (*PutGrantResponse, error)
	ListGrants(context.Context, *ListGrantsRequest) (*ListGrantsResponse, error)
	RecordUsage(context.Context, *RecordUsageRequest) (*RecordUsageResponse, error)
	PhotoURLs(context.Context, *PhotoURLsRequest) (*PhotoURLsResponse, error)
}

func unary[Req, Resp any](method string, call func(MarketServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MarketServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MarketServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MarketServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, MarketServer.Register),
		unary(MethodLogin, MarketServer.Login),
		unary(MethodPing, MarketServer.Ping),
		unary(MethodListCandidates, MarketServer.ListCandidates),
		unary(MethodApprovedIDs, MarketServer.ApprovedIDs),
		unary(MethodFindPreferences, MarketServer.FindPreferences),
		unary(MethodUpsertPreference, MarketServer.UpsertPreference),
		unary(MethodGetBalance, MarketServer.GetBalance),
		unary(MethodSetBalance, MarketServer.SetBalance),
		unary(MethodGetGrant, MarketServer.GetGrant),
		unary(MethodPutGrant, MarketServer.PutGrant),
		unary(MethodListGrants, MarketServer.ListGrants),
		unary(MethodRecordUsage, MarketServer.RecordUsage),
		unary(MethodPhotoURLs, MarketServer.PhotoURLs),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "talentledger/market/v1",
}

func RegisterMarketServer(s grpc.ServiceRegistrar, srv MarketServer) {
	s.RegisterService(&ServiceDesc, srv)
}
