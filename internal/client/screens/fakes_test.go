package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

type fakeSession struct {
	mu   sync.Mutex
	user string
}

func (s *fakeSession) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

type fakeDirectory struct {
	candidates []models.Candidate
	approved   []string
	// block makes ListCandidates wait for ctx to end.
	block   bool
	entered chan struct{}
}

func (d *fakeDirectory) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	if d.block {
		if d.entered != nil {
			close(d.entered)
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return d.candidates, nil
}

func (d *fakeDirectory) ApprovedIDs(context.Context) ([]string, error) {
	return d.approved, nil
}

// fakePrefs is a PreferenceSource for one user.
type fakePrefs struct {
	mu        sync.Mutex
	rows      map[string]models.PreferenceRecord
	upsertErr error
	finds     int
	upserts   int
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{rows: map[string]models.PreferenceRecord{}}
}

func (p *fakePrefs) FindPreferences(_ context.Context, f models.PreferenceFilter) ([]models.PreferenceRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finds++
	var out []models.PreferenceRecord
	for id, r := range p.rows {
		if f.CandidateID == "" || f.CandidateID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (p *fakePrefs) UpsertPreference(_ context.Context, _ string, rec models.PreferenceRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.upserts++
	if p.upsertErr != nil {
		return p.upsertErr
	}
	p.rows[rec.CandidateID] = rec
	return nil
}

func (p *fakePrefs) findCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finds
}

type fakeUnlocks struct {
	mu       sync.Mutex
	unlocked models.IDSet
	result   models.UnlockResult
	calls    int
}

func (u *fakeUnlocks) IsUnlocked(_ context.Context, _, id string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.unlocked.Has(id), nil
}

func (u *fakeUnlocks) UnlockedIDs(context.Context, string) (models.IDSet, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.unlocked.Union(nil), nil
}

func (u *fakeUnlocks) Unlock(_ context.Context, _, id string, _ int64) models.UnlockResult {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.result.Status == models.UnlockSuccess {
		u.unlocked.Add(id)
	}
	return u.result
}

type fakePhotos struct {
	err error
}

func (p *fakePhotos) URLs(_ context.Context, ids []string) (map[string]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := map[string]string{}
	for _, id := range ids {
		out[id] = "https://photos/" + id
	}
	return out, nil
}

func directoryOf(n int) *fakeDirectory {
	d := &fakeDirectory{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("c%02d", i)
		d.candidates = append(d.candidates, models.Candidate{
			ID:    id,
			Name:  fmt.Sprintf("Candidate %02d", i),
			Email: id + "@example.com",
		})
		d.approved = append(d.approved, id)
	}
	return d
}
