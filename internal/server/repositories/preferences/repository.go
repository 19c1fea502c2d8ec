package preferences

import (
	"context"

	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type Repository interface {
	Find(ctx context.Context, filter models.PreferenceFilter) ([]*models.Preference, error)
	Upsert(ctx context.Context, p *models.Preference) error
}
