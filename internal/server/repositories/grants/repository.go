package grants

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error)
	Put(ctx context.Context, g *models.UnlockGrant) error
	List(ctx context.Context, userID string) ([]*models.UnlockGrant, error)
}
