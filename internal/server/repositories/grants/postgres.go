// Package grants persists unlock grants. Rows are never deleted; expiry is
// evaluated by readers against issued_at.
package grants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/dbx"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	query := `SELECT user_id, candidate_id, issued_at FROM unlock_grants
		WHERE user_id = $1 AND candidate_id = $2`

	g := &models.UnlockGrant{}
	err := r.db.QueryRowContext(ctx, query, userID, candidateID).Scan(&g.UserID, &g.CandidateID, &g.IssuedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

// Put overwrites issued_at for the pair.
func (r *PostgresRepository) Put(ctx context.Context, g *models.UnlockGrant) error {
	query := `
		INSERT INTO unlock_grants (user_id, candidate_id, issued_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, candidate_id)
		DO UPDATE SET issued_at = EXCLUDED.issued_at`

	if _, err := r.db.ExecContext(ctx, query, g.UserID, g.CandidateID, g.IssuedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.UnlockGrant, error) {
	query := `SELECT user_id, candidate_id, issued_at FROM unlock_grants
		WHERE user_id = $1 ORDER BY issued_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select grants: %w", err)
	}
	defer rows.Close()

	var result []*models.UnlockGrant
	for rows.Next() {
		g := &models.UnlockGrant{}
		if err := rows.Scan(&g.UserID, &g.CandidateID, &g.IssuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grants: %w", err)
	}
	return result, nil
}
