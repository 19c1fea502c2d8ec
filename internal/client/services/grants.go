package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/common"
)

// UnlockGrantStore owns time-limited unlock grants. A grant older than
// common.UnlockGrantValidity reads as absent; expiry is computed on every
// read and nothing is swept.
type UnlockGrantStore interface {
	IsGranted(ctx context.Context, userID, candidateID string) (bool, error)
	Grant(ctx context.Context, userID, candidateID string) error
	ListGrantedIDs(ctx context.Context, userID string) (models.IDSet, error)
}

type unlockGrantStore struct {
	src GrantSource
	now func() time.Time
}

// NewUnlockGrantStore uses now as its clock, or time.Now when now is nil.
func NewUnlockGrantStore(src GrantSource, now func() time.Time) UnlockGrantStore {
	if now == nil {
		now = time.Now
	}
	return &unlockGrantStore{src: src, now: now}
}

func (s *unlockGrantStore) IsGranted(ctx context.Context, userID, candidateID string) (bool, error) {
	if userID == "" {
		return false, common.ErrAuthRequired
	}
	g, err := s.src.GetGrant(ctx, userID, candidateID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: read grant: %w", common.ErrPersistence, err)
	}
	return !common.GrantExpired(g.IssuedAt, s.now()), nil
}

// Grant is a no-op while an unexpired grant exists, so the original
// issuedAt survives repeated calls. Otherwise it writes a new grant; the
// source stamps its issue time.
func (s *unlockGrantStore) Grant(ctx context.Context, userID, candidateID string) error {
	ok, err := s.IsGranted(ctx, userID, candidateID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := s.src.PutGrant(ctx, userID, candidateID); err != nil {
		return fmt.Errorf("%w: write grant: %w", common.ErrPersistence, err)
	}
	return nil
}

func (s *unlockGrantStore) ListGrantedIDs(ctx context.Context, userID string) (models.IDSet, error) {
	if userID == "" {
		return nil, common.ErrAuthRequired
	}
	grants, err := s.src.ListGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list grants: %w", common.ErrPersistence, err)
	}

	now := s.now()
	ids := models.IDSet{}
	for _, g := range grants {
		if !common.GrantExpired(g.IssuedAt, now) {
			ids.Add(g.CandidateID)
		}
	}
	return ids, nil
}
