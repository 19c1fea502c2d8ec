// Package candidates provides the PostgreSQL-backed candidate directory.
package candidates

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/talentledger/internal/dbx"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every candidate ordered by creation time, approved or not.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Candidate, error) {
	query := `SELECT id, name, headline, email, phone, education, languages, job_type, location, skills, approved
		FROM candidates ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	defer rows.Close()

	var result []*models.Candidate
	for rows.Next() {
		var (
			c                 models.Candidate
			languages, skills string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Headline, &c.Email, &c.Phone, &c.Education,
			&languages, &c.JobType, &c.Location, &skills, &c.Approved); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Languages = splitList(languages)
		c.Skills = splitList(skills)
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ApprovedIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM candidates WHERE approved ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select approved ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan approved id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate approved ids: %w", err)
	}
	return ids, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
