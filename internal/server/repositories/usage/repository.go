package usage

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, u *models.Usage) (*models.Usage, error)
}
