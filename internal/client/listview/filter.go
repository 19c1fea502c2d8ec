package listview

import (
	"strings"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
)

// FilterKey names one filterable candidate attribute.
type FilterKey string

const (
	FilterEducation FilterKey = "education"
	FilterLanguages FilterKey = "languages"
	FilterJobType   FilterKey = "jobType"
	FilterLocation  FilterKey = "location"
	FilterSkills    FilterKey = "skills"
)

// FilterKeys lists the supported keys in display order.
var FilterKeys = []FilterKey{FilterEducation, FilterLanguages, FilterJobType, FilterLocation, FilterSkills}

// Filters maps a key to its selected values. Keys combine with AND, the
// values of one key with OR.
type Filters map[FilterKey][]string

// Active reports whether any key has at least one non-empty value.
func (f Filters) Active() bool {
	for _, vals := range f {
		for _, v := range vals {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}

func (f Filters) clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func fieldValues(c models.Candidate, key FilterKey) []string {
	switch key {
	case FilterEducation:
		return []string{c.Education}
	case FilterLanguages:
		return c.Languages
	case FilterJobType:
		return []string{c.JobType}
	case FilterLocation:
		return []string{c.Location}
	case FilterSkills:
		return c.Skills
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matchesKey(c models.Candidate, key FilterKey, wanted []string) bool {
	seen := false
	for _, w := range wanted {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		seen = true
		for _, v := range fieldValues(c, key) {
			if containsFold(v, w) {
				return true
			}
		}
	}
	return !seen
}

// Filter keeps the candidates matching every active key.
func Filter(source []models.Candidate, filters Filters) []models.Candidate {
	out := make([]models.Candidate, 0, len(source))
	for _, c := range source {
		ok := true
		for key, wanted := range filters {
			if !matchesKey(c, key, wanted) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func searchFields(c models.Candidate) []string {
	fields := []string{c.Name, c.Headline, c.Location, c.Education, c.JobType}
	fields = append(fields, c.Skills...)
	return append(fields, c.Languages...)
}

// Search keeps the candidates with a case-insensitive substring match of
// term in any text field. An empty term keeps everything.
func Search(source []models.Candidate, term string) []models.Candidate {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]models.Candidate(nil), source...)
	}
	out := make([]models.Candidate, 0, len(source))
	for _, c := range source {
		for _, f := range searchFields(c) {
			if containsFold(f, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Combine intersects search and filter results by candidate id, keeping the
// order of searchResults.
func Combine(searchResults, filterResults []models.Candidate) []models.Candidate {
	keep := make(models.IDSet, len(filterResults))
	for _, c := range filterResults {
		keep.Add(c.ID)
	}
	out := make([]models.Candidate, 0, len(searchResults))
	for _, c := range searchResults {
		if keep.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
