package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/repomanager"
)

// MarketService exposes the remote sources the client ledger is built on.
// Each method is a single statement; combining them is the client's job.
type MarketService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewMarketService(db *sql.DB, m repomanager.RepositoryManager) *MarketService {
	return &MarketService{db: db, repomanager: m, now: time.Now}
}

// ListCandidates returns the directory as userID sees it. Email and phone
// are blank for candidates without an unexpired grant.
func (s *MarketService) ListCandidates(ctx context.Context, userID string) ([]*models.Candidate, error) {
	list, err := s.repomanager.Candidates(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	open := map[string]struct{}{}
	if userID != "" {
		granted, err := s.repomanager.Grants(s.db).List(ctx, userID)
		if err != nil {
			return nil, err
		}
		now := s.now()
		for _, g := range granted {
			if !common.GrantExpired(g.IssuedAt, now) {
				open[g.CandidateID] = struct{}{}
			}
		}
	}

	out := make([]*models.Candidate, 0, len(list))
	for _, c := range list {
		if _, ok := open[c.ID]; !ok {
			masked := *c
			masked.Email, masked.Phone = "", ""
			c = &masked
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *MarketService) ApprovedIDs(ctx context.Context) ([]string, error) {
	return s.repomanager.Candidates(s.db).ApprovedIDs(ctx)
}

func (s *MarketService) FindPreferences(ctx context.Context, filter models.PreferenceFilter) ([]*models.Preference, error) {
	if filter.UserID == "" {
		return nil, common.ErrAuthRequired
	}
	return s.repomanager.Preferences(s.db).Find(ctx, filter)
}

func (s *MarketService) UpsertPreference(ctx context.Context, p *models.Preference) error {
	if p.UserID == "" {
		return common.ErrAuthRequired
	}
	if p.CandidateID == "" {
		return common.ErrorValidation
	}
	return s.repomanager.Preferences(s.db).Upsert(ctx, p)
}

// GetBalance reports zero for users without a balance row.
func (s *MarketService) GetBalance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.repomanager.Balances(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return balance, nil
}

// SetBalance stores an absolute value. It does not compare against the
// previous balance.
func (s *MarketService) SetBalance(ctx context.Context, userID string, balance int64) error {
	if balance < 0 {
		return common.ErrInvalidAmount
	}
	return s.repomanager.Balances(s.db).Set(ctx, userID, balance)
}

// GetGrant returns common.ErrorNotFound when the pair was never unlocked.
func (s *MarketService) GetGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	return s.repomanager.Grants(s.db).Get(ctx, userID, candidateID)
}

// PutGrant records a grant issued now and returns it. The issue time is
// always the server's clock.
func (s *MarketService) PutGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	if candidateID == "" {
		return nil, common.ErrorValidation
	}
	g := &models.UnlockGrant{UserID: userID, CandidateID: candidateID, IssuedAt: s.now().UTC()}
	if err := s.repomanager.Grants(s.db).Put(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *MarketService) ListGrants(ctx context.Context, userID string) ([]*models.UnlockGrant, error) {
	return s.repomanager.Grants(s.db).List(ctx, userID)
}

func (s *MarketService) RecordUsage(ctx context.Context, u *models.Usage) (*models.Usage, error) {
	if u.Cost < 0 {
		return nil, common.ErrInvalidAmount
	}
	created, err := s.repomanager.Usage(s.db).Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("error recording usage: %w", err)
	}
	return created, nil
}
