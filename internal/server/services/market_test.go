package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarket(store *memStore) *MarketService {
	return NewMarketService(nil, store)
}

func TestMarket_Directory(t *testing.T) {
	store := newMemStore()
	store.candidates = []*models.Candidate{
		{ID: "c1", Name: "Ana", Approved: true},
		{ID: "c2", Name: "Ben"},
	}
	s := newMarket(store)

	list, err := s.ListCandidates(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ids, err := s.ApprovedIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}

func TestMarket_Preferences(t *testing.T) {
	s := newMarket(newMemStore())
	ctx := context.Background()

	require.NoError(t, s.UpsertPreference(ctx, &models.Preference{UserID: "u1", CandidateID: "c1", Saved: true}))
	require.NoError(t, s.UpsertPreference(ctx, &models.Preference{UserID: "u1", CandidateID: "c2", Favourite: true}))

	one, err := s.FindPreferences(ctx, models.PreferenceFilter{UserID: "u1", CandidateID: "c2"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.True(t, one[0].Favourite)

	all, err := s.FindPreferences(ctx, models.PreferenceFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.FindPreferences(ctx, models.PreferenceFilter{})
	assert.ErrorIs(t, err, common.ErrAuthRequired)
	assert.ErrorIs(t, s.UpsertPreference(ctx, &models.Preference{CandidateID: "c1"}), common.ErrAuthRequired)
	assert.ErrorIs(t, s.UpsertPreference(ctx, &models.Preference{UserID: "u1"}), common.ErrorValidation)
}

func TestMarket_Balance(t *testing.T) {
	s := newMarket(newMemStore())
	ctx := context.Background()

	b, err := s.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, b)

	require.NoError(t, s.SetBalance(ctx, "u1", 70))
	b, err = s.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(70), b)

	assert.ErrorIs(t, s.SetBalance(ctx, "u1", -5), common.ErrInvalidAmount)
}

func TestMarket_Grants(t *testing.T) {
	store := newMemStore()
	s := newMarket(store)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := s.GetGrant(ctx, "u1", "c1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	put, err := s.PutGrant(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, fixed, put.IssuedAt)
	g, err := s.GetGrant(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, fixed, g.IssuedAt)

	list, err := s.ListGrants(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.PutGrant(ctx, "u1", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestMarket_PutGrantIgnoresCallerTime(t *testing.T) {
	store := newMemStore()
	s := newMarket(store)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := s.PutGrant(ctx, "u1", "c1")
	require.NoError(t, err)

	// A re-grant restarts the window from the server clock.
	s.now = func() time.Time { return fixed.Add(time.Hour) }
	_, err = s.PutGrant(ctx, "u1", "c1")
	require.NoError(t, err)
	g, err := s.GetGrant(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), g.IssuedAt)
}

func TestMarket_ListCandidatesMasksContactsWithoutGrant(t *testing.T) {
	store := newMemStore()
	store.candidates = []*models.Candidate{
		{ID: "c1", Name: "Ana", Email: "ana@example.com", Phone: "+100"},
		{ID: "c2", Name: "Ben", Email: "ben@example.com", Phone: "+200"},
		{ID: "c3", Name: "Cy", Email: "cy@example.com", Phone: "+300"},
	}
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	store.grants[[2]string{"u1", "c1"}] = &models.UnlockGrant{UserID: "u1", CandidateID: "c1", IssuedAt: now.Add(-24 * time.Hour)}
	store.grants[[2]string{"u1", "c2"}] = &models.UnlockGrant{UserID: "u1", CandidateID: "c2", IssuedAt: now.Add(-31 * 24 * time.Hour)}
	s := newMarket(store)
	s.now = func() time.Time { return now }

	list, err := s.ListCandidates(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "ana@example.com", list[0].Email)
	assert.Equal(t, "+100", list[0].Phone)
	assert.Empty(t, list[1].Email, "expired grant")
	assert.Empty(t, list[1].Phone)
	assert.Empty(t, list[2].Email, "no grant")
	assert.Equal(t, "Cy", list[2].Name)
	assert.Equal(t, "ben@example.com", store.candidates[1].Email, "stored rows are not modified")

	anon, err := s.ListCandidates(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, anon[0].Email)
}

func TestMarket_RecordUsage(t *testing.T) {
	store := newMemStore()
	s := newMarket(store)

	u, err := s.RecordUsage(context.Background(), &models.Usage{UserID: "u1", CandidateID: "c1", Kind: "profile", Cost: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Len(t, store.usage, 1)

	_, err = s.RecordUsage(context.Background(), &models.Usage{Cost: -1})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
}
