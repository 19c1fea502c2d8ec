package grpc

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/api/marketv1"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

func (s *GRPCServer) Register(ctx context.Context, req *marketv1.RegisterRequest) (*marketv1.RegisterResponse, error) {
	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "username", req.Username, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "user_id", user.ID)
	return &marketv1.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *marketv1.LoginRequest) (*marketv1.LoginResponse, error) {
	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *marketv1.PingRequest) (*marketv1.PingResponse, error) {
	return &marketv1.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListCandidates(ctx context.Context, req *marketv1.ListCandidatesRequest) (*marketv1.ListCandidatesResponse, error) {
	userID, _ := userIDFromContext(ctx)
	list, err := s.market.ListCandidates(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &marketv1.ListCandidatesResponse{Candidates: make([]marketv1.Candidate, 0, len(list))}
	for _, c := range list {
		resp.Candidates = append(resp.Candidates, marketv1.Candidate{
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
	return resp, nil
}

func (s *GRPCServer) ApprovedIDs(ctx context.Context, req *marketv1.ApprovedIDsRequest) (*marketv1.ApprovedIDsResponse, error) {
	ids, err := s.market.ApprovedIDs(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.ApprovedIDsResponse{IDs: ids}, nil
}

func (s *GRPCServer) FindPreferences(ctx context.Context, req *marketv1.FindPreferencesRequest) (*marketv1.FindPreferencesResponse, error) {
	userID, _ := userIDFromContext(ctx)

	rows, err := s.market.FindPreferences(ctx, models.PreferenceFilter{UserID: userID, CandidateID: req.CandidateID})
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &marketv1.FindPreferencesResponse{Preferences: make([]marketv1.Preference, 0, len(rows))}
	for _, p := range rows {
		resp.Preferences = append(resp.Preferences, marketv1.Preference{
			CandidateID: p.CandidateID,
			Saved:       p.Saved,
			Favourite:   p.Favourite,
			Downloaded:  p.Downloaded,
			Unlocked:    p.Unlocked,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return resp, nil
}

func (s *GRPCServer) UpsertPreference(ctx context.Context, req *marketv1.UpsertPreferenceRequest) (*marketv1.UpsertPreferenceResponse, error) {
	userID, _ := userIDFromContext(ctx)
	p := req.Preference

	err := s.market.UpsertPreference(ctx, &models.Preference{
		UserID:      userID,
		CandidateID: p.CandidateID,
		Saved:       p.Saved,
		Favourite:   p.Favourite,
		Downloaded:  p.Downloaded,
		Unlocked:    p.Unlocked,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.UpsertPreferenceResponse{}, nil
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *marketv1.GetBalanceRequest) (*marketv1.GetBalanceResponse, error) {
	userID, _ := userIDFromContext(ctx)
	balance, err := s.market.GetBalance(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.GetBalanceResponse{Balance: balance}, nil
}

func (s *GRPCServer) SetBalance(ctx context.Context, req *marketv1.SetBalanceRequest) (*marketv1.SetBalanceResponse, error) {
	userID, _ := userIDFromContext(ctx)
	if err := s.market.SetBalance(ctx, userID, req.Balance); err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.SetBalanceResponse{}, nil
}

func (s *GRPCServer) GetGrant(ctx context.Context, req *marketv1.GetGrantRequest) (*marketv1.GetGrantResponse, error) {
	userID, _ := userIDFromContext(ctx)
	g, err := s.market.GetGrant(ctx, userID, req.CandidateID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.GetGrantResponse{Grant: marketv1.Grant{CandidateID: g.CandidateID, IssuedAt: g.IssuedAt}}, nil
}

func (s *GRPCServer) PutGrant(ctx context.Context, req *marketv1.PutGrantRequest) (*marketv1.PutGrantResponse, error) {
	userID, _ := userIDFromContext(ctx)
	g, err := s.market.PutGrant(ctx, userID, req.CandidateID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.PutGrantResponse{Grant: marketv1.Grant{CandidateID: g.CandidateID, IssuedAt: g.IssuedAt}}, nil
}

func (s *GRPCServer) ListGrants(ctx context.Context, req *marketv1.ListGrantsRequest) (*marketv1.ListGrantsResponse, error) {
	userID, _ := userIDFromContext(ctx)
	list, err := s.market.ListGrants(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &marketv1.ListGrantsResponse{Grants: make([]marketv1.Grant, 0, len(list))}
	for _, g := range list {
		resp.Grants = append(resp.Grants, marketv1.Grant{CandidateID: g.CandidateID, IssuedAt: g.IssuedAt})
	}
	return resp, nil
}

func (s *GRPCServer) RecordUsage(ctx context.Context, req *marketv1.RecordUsageRequest) (*marketv1.RecordUsageResponse, error) {
	userID, _ := userIDFromContext(ctx)
	u, err := s.market.RecordUsage(ctx, &models.Usage{UserID: userID, CandidateID: req.CandidateID, Kind: req.Kind, Cost: req.Cost})
	if err != nil {
		return nil, toStatus(err)
	}
	return &marketv1.RecordUsageResponse{ID: u.ID}, nil
}

func (s *GRPCServer) PhotoURLs(ctx context.Context, req *marketv1.PhotoURLsRequest) (*marketv1.PhotoURLsResponse, error) {
	urls, err := s.photos.PhotoURLs(ctx, req.CandidateIDs)
	if err != nil {
		s.logger.Error(ctx, "photo lookup failed", "error", err)
		return nil, toStatus(err)
	}
	return &marketv1.PhotoURLsResponse{URLs: urls}, nil
}
