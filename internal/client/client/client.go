package client

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

type Client interface {
	Close() error

	Register(ctx context.Context, userName, password string) error
	// Login signs in and returns the user id carried by the access token.
	Login(ctx context.Context, userName, password string) (string, error)
	// Resume restores a session from a stored access token.
	Resume(token string) (string, error)
	Logout()
	AccessToken() string
	Ping(ctx context.Context) error

	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ApprovedIDs(ctx context.Context) ([]string, error)

	FindPreferences(ctx context.Context, filter models.PreferenceFilter) ([]models.PreferenceRecord, error)
	UpsertPreference(ctx context.Context, userID string, rec models.PreferenceRecord) error

	GetBalance(ctx context.Context, userID string) (int64, error)
	SetBalance(ctx context.Context, userID string, balance int64) error

	GetGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	PutGrant(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	ListGrants(ctx context.Context, userID string) ([]models.UnlockGrant, error)

	RecordUsage(ctx context.Context, userID, candidateID, kind string, cost int64) error

	PhotoURLs(ctx context.Context, candidateIDs []string) (map[string]string, error)
}
