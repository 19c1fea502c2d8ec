// Package usage appends advisory spending records.
package usage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/dbx"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *models.Usage) (*models.Usage, error) {
	query := `INSERT INTO usage_history (user_id, candidate_id, kind, cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, u.UserID, u.CandidateID, u.Kind, u.Cost).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
