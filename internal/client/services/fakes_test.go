package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/client/client"
	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

// memSource is an in-memory remote: preferences, balances, grants and usage.
// Every call is counted; the *Err fields inject failures.
type memSource struct {
	mu sync.Mutex

	prefs    map[string]map[string]models.PreferenceRecord
	balances map[string]int64
	grants   map[string]map[string]time.Time
	usage    []string

	FindErr      error
	UpsertErr    error
	GetBalErr    error
	SetBalErr    error
	GetGrantErr  error
	PutGrantErr  error
	ListGrantErr error
	UsageErr     error

	// beforeGet runs after every GetBalance read, outside the lock.
	beforeGet func()
	// now stamps grants written through PutGrant.
	now func() time.Time

	Calls map[string]int
}

func newMemSource() *memSource {
	return &memSource{
		prefs:    map[string]map[string]models.PreferenceRecord{},
		balances: map[string]int64{},
		grants:   map[string]map[string]time.Time{},
		Calls:    map[string]int{},
		now:      time.Now,
	}
}

func (m *memSource) count(name string) {
	m.Calls[name]++
}

func (m *memSource) calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

func (m *memSource) FindPreferences(_ context.Context, f models.PreferenceFilter) ([]models.PreferenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("FindPreferences")
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []models.PreferenceRecord
	for id, r := range m.prefs[f.UserID] {
		if f.CandidateID == "" || f.CandidateID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSource) UpsertPreference(_ context.Context, userID string, rec models.PreferenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("UpsertPreference")
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if m.prefs[userID] == nil {
		m.prefs[userID] = map[string]models.PreferenceRecord{}
	}
	m.prefs[userID][rec.CandidateID] = rec
	return nil
}

func (m *memSource) pref(userID, candidateID string) (models.PreferenceRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.prefs[userID][candidateID]
	return r, ok
}

func (m *memSource) GetBalance(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	m.count("GetBalance")
	hook := m.beforeGet
	b, err := m.balances[userID], m.GetBalErr
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return b, err
}

func (m *memSource) SetBalance(_ context.Context, userID string, balance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("SetBalance")
	if m.SetBalErr != nil {
		return m.SetBalErr
	}
	m.balances[userID] = balance
	return nil
}

func (m *memSource) balance(userID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

func (m *memSource) GetGrant(_ context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetGrant")
	if m.GetGrantErr != nil {
		return nil, m.GetGrantErr
	}
	t, ok := m.grants[userID][candidateID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.UnlockGrant{CandidateID: candidateID, IssuedAt: t}, nil
}

func (m *memSource) PutGrant(_ context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("PutGrant")
	if m.PutGrantErr != nil {
		return nil, m.PutGrantErr
	}
	issuedAt := m.now().UTC()
	m.setGrant(userID, candidateID, issuedAt)
	return &models.UnlockGrant{CandidateID: candidateID, IssuedAt: issuedAt}, nil
}

func (m *memSource) setGrant(userID, candidateID string, issuedAt time.Time) {
	if m.grants[userID] == nil {
		m.grants[userID] = map[string]time.Time{}
	}
	m.grants[userID][candidateID] = issuedAt
}

// seedGrant stores a grant with an arbitrary issue time.
func (m *memSource) seedGrant(userID, candidateID string, issuedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setGrant(userID, candidateID, issuedAt)
}

func (m *memSource) ListGrants(_ context.Context, userID string) ([]models.UnlockGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListGrants")
	if m.ListGrantErr != nil {
		return nil, m.ListGrantErr
	}
	var out []models.UnlockGrant
	for id, t := range m.grants[userID] {
		out = append(out, models.UnlockGrant{CandidateID: id, IssuedAt: t})
	}
	return out, nil
}

func (m *memSource) grantCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grants[userID])
}

func (m *memSource) RecordUsage(_ context.Context, userID, candidateID, kind string, cost int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("RecordUsage")
	if m.UsageErr != nil {
		return m.UsageErr
	}
	m.usage = append(m.usage, userID+"/"+candidateID+"/"+kind)
	return nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
