// Package preferences provides the PostgreSQL-backed relationship rows
// (saved / favourite / downloaded / unlocked) keyed by (user, candidate).
package preferences

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

// Find returns the user's rows, narrowed to one candidate when
// filter.CandidateID is set.
func (r *PostgresRepository) Find(ctx context.Context, filter models.PreferenceFilter) ([]*models.Preference, error) {
	query := `SELECT user_id, candidate_id, saved, favourite, downloaded, unlocked, updated_at
		FROM preferences
		WHERE user_id = $1 AND ($2 = '' OR candidate_id = $2)
		ORDER BY updated_at`

	rows, err := r.db.QueryContext(ctx, query, filter.UserID, filter.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to select preferences: %w", err)
	}
	defer rows.Close()

	var result []*models.Preference
	for rows.Next() {
		var p models.Preference
		if err := rows.Scan(&p.UserID, &p.CandidateID, &p.Saved, &p.Favourite, &p.Downloaded, &p.Unlocked, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}
	return result, nil
}

// Upsert writes the full row. There is no version check: concurrent writers
// for the same pair race and the last write wins.
func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Preference) error {
	query := `
		INSERT INTO preferences (user_id, candidate_id, saved, favourite, downloaded, unlocked, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id, candidate_id)
		DO UPDATE SET
			saved = EXCLUDED.saved,
			favourite = EXCLUDED.favourite,
			downloaded = EXCLUDED.downloaded,
			unlocked = EXCLUDED.unlocked,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, p.UserID, p.CandidateID, p.Saved, p.Favourite, p.Downloaded, p.Unlocked)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
