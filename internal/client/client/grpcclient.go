package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/api/marketv1"
	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *marketv1.MarketClient

	closeOnce sync.Once
	closeErr  error

	mu          sync.RWMutex
	accessToken string
	userID      string
}

func NewMarketClientService(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(s.timeoutInterceptor, s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = marketv1.NewMarketClient(conn)
	return nil
}

// Close releases the connection. Later calls return the first result.
func (s *GRPCClient) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.conn.Close() })
	return s.closeErr
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if token := s.AccessToken(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// timeoutInterceptor bounds calls whose context has no deadline.
func (s *GRPCClient) timeoutInterceptor(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if _, ok := ctx.Deadline(); !ok && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// userIDFromToken reads the uid claim without verifying the signature; the
// server verifies it on every call.
func userIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", common.ErrInvalidToken
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", common.ErrInvalidToken
	}
	return uid, nil
}

func (s *GRPCClient) setSession(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
	s.userID = userID
}

func (s *GRPCClient) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// checkUser rejects calls for a user other than the signed-in one.
func (s *GRPCClient) checkUser(userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID == "" || s.userID == "" || userID != s.userID {
		return common.ErrAuthRequired
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName, password string) error {
	_, err := s.client.Register(ctx, &marketv1.RegisterRequest{Username: userName, Password: password})
	return mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, userName, password string) (string, error) {
	resp, err := s.client.Login(ctx, &marketv1.LoginRequest{Username: userName, Password: password})
	if err != nil {
		return "", mapError(err)
	}
	return s.Resume(resp.AccessToken)
}

func (s *GRPCClient) Resume(token string) (string, error) {
	userID, err := userIDFromToken(token)
	if err != nil {
		return "", err
	}
	s.setSession(token, userID)
	return userID, nil
}

func (s *GRPCClient) Logout() {
	s.setSession("", "")
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &marketv1.PingRequest{})
	return mapError(err)
}

func (s *GRPCClient) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	resp, err := s.client.ListCandidates(ctx, &marketv1.ListCandidatesRequest{})
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]models.Candidate, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		out = append(out, models.Candidate{
			ID:        c.ID,
			Name:      c.Name,
			Headline:  c.Headline,
			Email:     c.Email,
			Phone:     c.Phone,
			Education: c.Education,
			Languages: c.Languages,
			JobType:   c.JobType,
			Location:  c.Location,
			Skills:    c.Skills,
			Approved:  c.Approved,
		})
	}
	return out, nil
}

func (s *GRPCClient) ApprovedIDs(ctx context.Context) ([]string, error) {
	resp, err := s.client.ApprovedIDs(ctx, &marketv1.ApprovedIDsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.IDs, nil
}

func (s *GRPCClient) FindPreferences(ctx context.Context, filter models.PreferenceFilter) ([]models.PreferenceRecord, error) {
	if err := s.checkUser(filter.UserID); err != nil {
		return nil, err
	}

	resp, err := s.client.FindPreferences(ctx, &marketv1.FindPreferencesRequest{CandidateID: filter.CandidateID})
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]models.PreferenceRecord, 0, len(resp.Preferences))
	for _, p := range resp.Preferences {
		out = append(out, models.PreferenceRecord{
			CandidateID: p.CandidateID,
			Saved:       p.Saved,
			Favourite:   p.Favourite,
			Downloaded:  p.Downloaded,
			Unlocked:    p.Unlocked,
		})
	}
	return out, nil
}

func (s *GRPCClient) UpsertPreference(ctx context.Context, userID string, rec models.PreferenceRecord) error {
	if err := s.checkUser(userID); err != nil {
		return err
	}
	_, err := s.client.UpsertPreference(ctx, &marketv1.UpsertPreferenceRequest{Preference: marketv1.Preference{
		CandidateID: rec.CandidateID,
		Saved:       rec.Saved,
		Favourite:   rec.Favourite,
		Downloaded:  rec.Downloaded,
		Unlocked:    rec.Unlocked,
	}})
	return mapError(err)
}

func (s *GRPCClient) GetBalance(ctx context.Context, userID string) (int64, error) {
	if err := s.checkUser(userID); err != nil {
		return 0, err
	}
	resp, err := s.client.GetBalance(ctx, &marketv1.GetBalanceRequest{})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Balance, nil
}

func (s *GRPCClient) SetBalance(ctx context.Context, userID string, balance int64) error {
	if err := s.checkUser(userID); err != nil {
		return err
	}
	_, err := s.client.SetBalance(ctx, &marketv1.SetBalanceRequest{Balance: balance})
	return mapError(err)
}

func (s *GRPCClient) GetGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	resp, err := s.client.GetGrant(ctx, &marketv1.GetGrantRequest{CandidateID: candidateID})
	if err != nil {
		return nil, mapError(err)
	}
	return &models.UnlockGrant{CandidateID: resp.Grant.CandidateID, IssuedAt: resp.Grant.IssuedAt}, nil
}

// PutGrant asks the server to grant candidateID now. The issue time comes
// from the server clock.
func (s *GRPCClient) PutGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	resp, err := s.client.PutGrant(ctx, &marketv1.PutGrantRequest{CandidateID: candidateID})
	if err != nil {
		return nil, mapError(err)
	}
	return &models.UnlockGrant{CandidateID: resp.Grant.CandidateID, IssuedAt: resp.Grant.IssuedAt}, nil
}

func (s *GRPCClient) ListGrants(ctx context.Context, userID string) ([]models.UnlockGrant, error) {
	if err := s.checkUser(userID); err != nil {
		return nil, err
	}
	resp, err := s.client.ListGrants(ctx, &marketv1.ListGrantsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]models.UnlockGrant, 0, len(resp.Grants))
	for _, g := range resp.Grants {
		out = append(out, models.UnlockGrant{CandidateID: g.CandidateID, IssuedAt: g.IssuedAt})
	}
	return out, nil
}

func (s *GRPCClient) RecordUsage(ctx context.Context, userID, candidateID, kind string, cost int64) error {
	if err := s.checkUser(userID); err != nil {
		return err
	}
	_, err := s.client.RecordUsage(ctx, &marketv1.RecordUsageRequest{CandidateID: candidateID, Kind: kind, Cost: cost})
	return mapError(err)
}

func (s *GRPCClient) PhotoURLs(ctx context.Context, candidateIDs []string) (map[string]string, error) {
	resp, err := s.client.PhotoURLs(ctx, &marketv1.PhotoURLsRequest{CandidateIDs: candidateIDs})
	if err != nil {
		return nil, mapError(err)
	}
	if resp.URLs == nil {
		return map[string]string{}, nil
	}
	return resp.URLs, nil
}
