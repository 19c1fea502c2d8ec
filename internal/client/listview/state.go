// Package listview holds the per-screen list state: the searched, filtered
// and sorted items, the current page and the selection.
package listview

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

type SortOrder int

const (
	// SortSource keeps the order of the source list.
	SortSource SortOrder = iota
	SortName
)

// State is the list state of one screen. It is not safe for concurrent use;
// the owning controller serialises access.
type State struct {
	items      []models.Candidate
	page       int
	pageSize   int
	searchTerm string
	filters    Filters
	sort       SortOrder
	selection  models.IDSet
}

// New returns an empty state. pageSize below 1 is treated as 1.
func New(pageSize int) *State {
	if pageSize < 1 {
		pageSize = 1
	}
	return &State{page: 1, pageSize: pageSize, filters: Filters{}, selection: models.IDSet{}}
}

// Rebuild recomputes items from source, resets the page to 1 and drops
// selected ids that are no longer listed.
func (s *State) Rebuild(source []models.Candidate, searchTerm string, filters Filters) {
	s.searchTerm = searchTerm
	s.filters = filters.clone()

	items := Combine(Search(source, searchTerm), Filter(source, s.filters))
	if s.sort == SortName {
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
	s.items = items
	s.page = 1

	listed := make(models.IDSet, len(items))
	for _, c := range items {
		listed.Add(c.ID)
	}
	for id := range s.selection {
		if !listed.Has(id) {
			s.selection.Remove(id)
		}
	}
}

// SetSort changes the order used by the next Rebuild.
func (s *State) SetSort(order SortOrder) {
	s.sort = order
}

func (s *State) Sort() SortOrder { return s.sort }

func (s *State) Items() []models.Candidate {
	return append([]models.Candidate(nil), s.items...)
}

func (s *State) Len() int { return len(s.items) }

func (s *State) SearchTerm() string { return s.searchTerm }

func (s *State) Filters() Filters { return s.filters.clone() }

func (s *State) Page() int { return s.page }

func (s *State) PageSize() int { return s.pageSize }

// PageCount is at least 1, also for an empty list.
func (s *State) PageCount() int {
	if len(s.items) == 0 {
		return 1
	}
	return (len(s.items)-1)/s.pageSize + 1
}

// SetPage clamps n into [1, PageCount] and returns the page set.
func (s *State) SetPage(n int) int {
	if n < 1 {
		n = 1
	}
	if last := s.PageCount(); n > last {
		n = last
	}
	s.page = n
	return n
}

// PageItems returns the items of the current page.
func (s *State) PageItems() []models.Candidate {
	start := (s.page - 1) * s.pageSize
	if start >= len(s.items) {
		return nil
	}
	end := min(start+s.pageSize, len(s.items))
	return append([]models.Candidate(nil), s.items[start:end]...)
}

// PageOf returns the 1-based page holding candidateID, or false when the
// candidate is not listed.
func (s *State) PageOf(candidateID string) (int, bool) {
	for i, c := range s.items {
		if c.ID == candidateID {
			return i/s.pageSize + 1, true
		}
	}
	return 0, false
}

// RestoreAfterDetailView moves to the page of candidateID and reports that
// the caller should scroll to it. When the candidate is gone the page is
// left alone and false is returned.
func (s *State) RestoreAfterDetailView(candidateID string) bool {
	page, ok := s.PageOf(candidateID)
	if !ok {
		return false
	}
	s.page = page
	return true
}

// ToggleSelected flips the selection of a listed candidate and returns the
// new state. Unlisted ids are ignored.
func (s *State) ToggleSelected(candidateID string) bool {
	if _, ok := s.PageOf(candidateID); !ok {
		return false
	}
	if s.selection.Has(candidateID) {
		s.selection.Remove(candidateID)
		return false
	}
	s.selection.Add(candidateID)
	return true
}

// SelectPage selects every candidate on the current page.
func (s *State) SelectPage() {
	for _, c := range s.PageItems() {
		s.selection.Add(c.ID)
	}
}

func (s *State) ClearSelection() {
	s.selection = models.IDSet{}
}

func (s *State) Selected() []string {
	return s.selection.Sorted()
}
