package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/common"
)

// RelationshipStore owns the per-(user, candidate) preference flags.
//
// Upsert reads the existing row and writes the merged result. There is no
// compare-and-swap, so concurrent upserts for one pair are last-write-wins.
type RelationshipStore interface {
	Upsert(ctx context.Context, userID, candidateID string, patch models.FlagsPatch) error
	ListForUser(ctx context.Context, userID string) (models.RelationshipSets, error)
}

type relationshipStore struct {
	src PreferenceSource
}

func NewRelationshipStore(src PreferenceSource) RelationshipStore {
	return &relationshipStore{src: src}
}

// Upsert merges patch into the existing row. A missing row is created only
// when the patch turns at least one flag on. Failures are wrapped with
// common.ErrPersistence and never retried.
func (s *relationshipStore) Upsert(ctx context.Context, userID, candidateID string, patch models.FlagsPatch) error {
	if userID == "" {
		return common.ErrAuthRequired
	}

	rows, err := s.src.FindPreferences(ctx, models.PreferenceFilter{UserID: userID, CandidateID: candidateID})
	if err != nil {
		return fmt.Errorf("%w: read preference: %w", common.ErrPersistence, err)
	}

	var rec models.PreferenceRecord
	if len(rows) > 0 {
		rec = rows[0]
	} else {
		if !patch.SetsAnyTrue() {
			return nil
		}
		rec = models.PreferenceRecord{CandidateID: candidateID}
	}
	patch.Apply(&rec)

	if err := s.src.UpsertPreference(ctx, userID, rec); err != nil {
		return fmt.Errorf("%w: write preference: %w", common.ErrPersistence, err)
	}
	return nil
}

// ListForUser splits the user's rows by flag. A user without rows gets
// four empty sets.
func (s *relationshipStore) ListForUser(ctx context.Context, userID string) (models.RelationshipSets, error) {
	sets := models.NewRelationshipSets()
	if userID == "" {
		return sets, common.ErrAuthRequired
	}

	rows, err := s.src.FindPreferences(ctx, models.PreferenceFilter{UserID: userID})
	if err != nil {
		return sets, fmt.Errorf("%w: list preferences: %w", common.ErrPersistence, err)
	}

	for _, r := range rows {
		if r.Saved {
			sets.SavedIDs.Add(r.CandidateID)
		}
		if r.Favourite {
			sets.FavouriteIDs.Add(r.CandidateID)
		}
		if r.Downloaded {
			sets.DownloadedIDs.Add(r.CandidateID)
		}
		if r.Unlocked {
			sets.UnlockedIDs.Add(r.CandidateID)
		}
	}
	return sets, nil
}
