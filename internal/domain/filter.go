package domain

import (
	"slices"
	"strings"
	"time"
)

// SearchMode selects how text filters compare against record fields.
type SearchMode string

const (
	// SearchFuzzy matches case-insensitive substrings.
	SearchFuzzy SearchMode = "fuzzy"
	// SearchExact matches whole values, case-insensitively.
	SearchExact SearchMode = "exact"
)

// FilterCriteria describes an advanced log query. Zero values mean "no
// constraint". The criteria are applied in memory against the full record
// snapshot: personal logs are small enough that a database-side query adds
// nothing but SQL.
type FilterCriteria struct {
	Mode SearchMode

	// SearchText matches against callsign, band, mode, name, and QTH.
	SearchText string

	Callsign      string
	Band          string
	SelectedBands []string
	ModeFilter    string
	SelectedModes []string

	StartDate *time.Time
	EndDate   *time.Time

	Name       string
	QTH        string
	GridSquare string
	Satellite  string

	MinFrequency *float64
	MaxFrequency *float64
}

// IsZero reports whether no constraint is set.
func (f FilterCriteria) IsZero() bool {
	return f.SearchText == "" && f.Callsign == "" && f.Band == "" &&
		len(f.SelectedBands) == 0 && f.ModeFilter == "" && len(f.SelectedModes) == 0 &&
		f.StartDate == nil && f.EndDate == nil && f.Name == "" && f.QTH == "" &&
		f.GridSquare == "" && f.Satellite == "" && f.MinFrequency == nil && f.MaxFrequency == nil
}

// Apply returns the subset of records matching every set constraint.
// The input slice is never mutated.
func (f FilterCriteria) Apply(records []QSO) []QSO {
	mode := f.Mode
	if mode == "" {
		mode = SearchFuzzy
	}

	out := make([]QSO, 0, len(records))
	for _, r := range records {
		if f.matches(r, mode) {
			out = append(out, r)
		}
	}
	return out
}

func (f FilterCriteria) matches(r QSO, mode SearchMode) bool {
	if f.SearchText != "" && !matchesSearchText(r, f.SearchText, mode) {
		return false
	}
	if f.Callsign != "" && !matchText(r.Callsign, f.Callsign, mode) {
		return false
	}
	if f.Band != "" && !matchText(r.Band, f.Band, mode) {
		return false
	}
	if len(f.SelectedBands) > 0 && !slices.Contains(f.SelectedBands, r.Band) {
		return false
	}
	if f.ModeFilter != "" && !matchText(r.Mode, f.ModeFilter, mode) {
		return false
	}
	if len(f.SelectedModes) > 0 && !slices.Contains(f.SelectedModes, r.Mode) {
		return false
	}
	if f.StartDate != nil && r.Time.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && r.Time.After(endOfDay(*f.EndDate)) {
		return false
	}
	if f.Name != "" && (r.Name == "" || !matchText(r.Name, f.Name, mode)) {
		return false
	}
	if f.QTH != "" && (r.QTH == "" || !matchText(r.QTH, f.QTH, mode)) {
		return false
	}
	if f.GridSquare != "" && (r.GridSquare == "" || !matchText(r.GridSquare, f.GridSquare, mode)) {
		return false
	}
	if f.Satellite != "" && (r.Satellite == "" || !matchText(r.Satellite, f.Satellite, mode)) {
		return false
	}
	if f.MinFrequency != nil && r.Frequency < *f.MinFrequency {
		return false
	}
	if f.MaxFrequency != nil && r.Frequency > *f.MaxFrequency {
		return false
	}
	return true
}

// matchesSearchText implements the general search box: any of the five
// searchable fields may satisfy the query.
func matchesSearchText(r QSO, q string, mode SearchMode) bool {
	for _, field := range []string{r.Callsign, r.Band, r.Mode, r.Name, r.QTH} {
		if field != "" && matchText(field, q, mode) {
			return true
		}
	}
	return false
}

// matchText compares a record field against a query under the given mode:
// case-insensitive substring for fuzzy, case-insensitive equality for exact.
func matchText(value, query string, mode SearchMode) bool {
	if mode == SearchExact {
		return strings.EqualFold(value, query)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

// endOfDay extends an end-date bound to 23:59:59 of that day so a filter
// ending "today" includes today's contacts.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// UniqueBands returns the sorted distinct bands present in records.
func UniqueBands(records []QSO) []string {
	return uniqueField(records, func(r QSO) string { return r.Band })
}

// UniqueModes returns the sorted distinct modes present in records.
func UniqueModes(records []QSO) []string {
	return uniqueField(records, func(r QSO) string { return r.Mode })
}

func uniqueField(records []QSO, field func(QSO) string) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
