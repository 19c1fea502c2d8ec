// Package services contains the client-side relationship and unlock ledger:
// preference flags, coin balance, unlock grants, the device-local unlock
// cache, the unlock coordinator, and the signed-in session.
//
// Services depend on narrow source interfaces. The gRPC client satisfies
// all of them; tests substitute in-memory fakes.
package services

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

type PreferenceSource interface {
	FindPreferences(ctx context.Context, filter models.PreferenceFilter) ([]models.PreferenceRecord, error)
	UpsertPreference(ctx context.Context, userID string, rec models.PreferenceRecord) error
}

// BalanceSource offers read and absolute set. There is no native decrement.
type BalanceSource interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	SetBalance(ctx context.Context, userID string, balance int64) error
}

// GrantSource returns common.ErrorNotFound from GetGrant when no grant exists.
// PutGrant stamps the issue time itself and returns the stored grant.
type GrantSource interface {
	GetGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	PutGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	ListGrants(ctx context.Context, userID string) ([]models.UnlockGrant, error)
}

type UsageSource interface {
	RecordUsage(ctx context.Context, userID, candidateID, kind string, cost int64) error
}

type DirectorySource interface {
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ApprovedIDs(ctx context.Context) ([]string, error)
}
