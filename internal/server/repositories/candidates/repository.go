package candidates

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

// Repository is the candidate directory: the full profile set plus the ids
// cleared for display.
type Repository interface {
	List(ctx context.Context) ([]*models.Candidate, error)
	ApprovedIDs(ctx context.Context) ([]string, error)
}
