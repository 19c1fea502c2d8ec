package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/dbx"
	"github.com/dmitrijs2005/talentledger/internal/server/models"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/balances"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/candidates"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/grants"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/preferences"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/usage"
	"github.com/dmitrijs2005/talentledger/internal/server/repositories/users"
)

// memStore backs every repository with maps so tests can inspect state.
type memStore struct {
	mu sync.Mutex

	users      map[string]*models.User
	candidates []*models.Candidate
	prefs      map[[2]string]*models.Preference
	balances   map[string]int64
	grants     map[[2]string]*models.UnlockGrant
	usage      []*models.Usage

	createUserErr error
	setBalanceErr error
	getUserErr    error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		prefs:    map[[2]string]*models.Preference{},
		balances: map[string]int64{},
		grants:   map[[2]string]*models.UnlockGrant{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository              { return memUsers{m} }
func (m *memStore) Candidates(dbx.DBTX) candidates.Repository    { return memCandidates{m} }
func (m *memStore) Preferences(dbx.DBTX) preferences.Repository  { return memPrefs{m} }
func (m *memStore) Balances(dbx.DBTX) balances.Repository        { return memBalances{m} }
func (m *memStore) Grants(dbx.DBTX) grants.Repository            { return memGrants{m} }
func (m *memStore) Usage(dbx.DBTX) usage.Repository              { return memUsage{m} }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.createUserErr != nil {
		return nil, r.m.createUserErr
	}
	u.ID = "id-" + u.UserName
	r.m.users[u.UserName] = u
	return u, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.getUserErr != nil {
		return nil, r.m.getUserErr
	}
	u, ok := r.m.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memCandidates struct{ m *memStore }

func (r memCandidates) List(context.Context) ([]*models.Candidate, error) {
	return r.m.candidates, nil
}

func (r memCandidates) ApprovedIDs(context.Context) ([]string, error) {
	var ids []string
	for _, c := range r.m.candidates {
		if c.Approved {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

type memPrefs struct{ m *memStore }

func (r memPrefs) Find(_ context.Context, f models.PreferenceFilter) ([]*models.Preference, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Preference
	for k, p := range r.m.prefs {
		if k[0] == f.UserID && (f.CandidateID == "" || k[1] == f.CandidateID) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateID < out[j].CandidateID })
	return out, nil
}

func (r memPrefs) Upsert(_ context.Context, p *models.Preference) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *p
	r.m.prefs[[2]string{p.UserID, p.CandidateID}] = &cp
	return nil
}

type memBalances struct{ m *memStore }

func (r memBalances) Get(_ context.Context, userID string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.balances[userID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return b, nil
}

func (r memBalances) Set(_ context.Context, userID string, b int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.setBalanceErr != nil {
		return r.m.setBalanceErr
	}
	r.m.balances[userID] = b
	return nil
}

type memGrants struct{ m *memStore }

func (r memGrants) Get(_ context.Context, userID, candidateID string) (*models.UnlockGrant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	g, ok := r.m.grants[[2]string{userID, candidateID}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return g, nil
}

func (r memGrants) Put(_ context.Context, g *models.UnlockGrant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.grants[[2]string{g.UserID, g.CandidateID}] = g
	return nil
}

func (r memGrants) List(_ context.Context, userID string) ([]*models.UnlockGrant, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.UnlockGrant
	for k, g := range r.m.grants {
		if k[0] == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

type memUsage struct{ m *memStore }

func (r memUsage) Create(_ context.Context, u *models.Usage) (*models.Usage, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u.ID = int64(len(r.m.usage) + 1)
	r.m.usage = append(r.m.usage, u)
	return u, nil
}
