package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

func logFixture() []domain.QSO {
	return []domain.QSO{
		{
			Callsign: "DL1ABC", Band: "20m", Mode: "SSB", Frequency: 14.250,
			Name: "Hans", QTH: "Berlin",
			Time: time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			Callsign: "OE3XYZ", Band: "40m", Mode: "CW", Frequency: 7.020,
			Name: "Maria", QTH: "Vienna", Satellite: "RS-44",
			Time: time.Date(2025, 7, 12, 9, 0, 0, 0, time.UTC),
		},
		{
			Callsign: "G4DEF", Band: "20m", Mode: "FT8", Frequency: 14.074,
			GridSquare: "IO91wm",
			Time:       time.Date(2025, 7, 14, 23, 59, 0, 0, time.UTC),
		},
	}
}

func TestFilterCriteria_IsZero(t *testing.T) {
	assert.True(t, domain.FilterCriteria{}.IsZero())
	assert.True(t, domain.FilterCriteria{Mode: domain.SearchExact}.IsZero(),
		"search mode alone is not a constraint")
	assert.False(t, domain.FilterCriteria{Callsign: "DL"}.IsZero())
}

func TestFilterCriteria_SearchText_Fuzzy(t *testing.T) {
	f := domain.FilterCriteria{SearchText: "dl1"}

	got := f.Apply(logFixture())

	require.Len(t, got, 1)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
}

// The general search box matches any of callsign, band, mode, name, or QTH.
func TestFilterCriteria_SearchText_MatchesAnyField(t *testing.T) {
	got := domain.FilterCriteria{SearchText: "vienna"}.Apply(logFixture())
	require.Len(t, got, 1)
	assert.Equal(t, "OE3XYZ", got[0].Callsign)

	got = domain.FilterCriteria{SearchText: "ft8"}.Apply(logFixture())
	require.Len(t, got, 1)
	assert.Equal(t, "G4DEF", got[0].Callsign)
}

func TestFilterCriteria_ExactMode(t *testing.T) {
	f := domain.FilterCriteria{Mode: domain.SearchExact, Callsign: "dl1abc"}
	got := f.Apply(logFixture())
	require.Len(t, got, 1)

	f = domain.FilterCriteria{Mode: domain.SearchExact, Callsign: "dl1"}
	got = f.Apply(logFixture())
	assert.Empty(t, got, "exact mode must not substring-match")
}

func TestFilterCriteria_SelectedBands(t *testing.T) {
	f := domain.FilterCriteria{SelectedBands: []string{"20m"}}

	got := f.Apply(logFixture())

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "20m", r.Band)
	}
}

// TestFilterCriteria_EndDateIncludesWholeDay pins the end-of-day rule: a
// range ending on the 14th includes a contact logged at 23:59 that day.
func TestFilterCriteria_EndDateIncludesWholeDay(t *testing.T) {
	start := time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	f := domain.FilterCriteria{StartDate: &start, EndDate: &end}

	got := f.Apply(logFixture())

	require.Len(t, got, 1)
	assert.Equal(t, "G4DEF", got[0].Callsign)
}

func TestFilterCriteria_FrequencyRange(t *testing.T) {
	lo := 14.0
	hi := 14.1
	f := domain.FilterCriteria{MinFrequency: &lo, MaxFrequency: &hi}

	got := f.Apply(logFixture())

	require.Len(t, got, 1)
	assert.Equal(t, "G4DEF", got[0].Callsign)
}

// An empty optional field never matches a set text constraint.
func TestFilterCriteria_EmptyFieldNeverMatches(t *testing.T) {
	f := domain.FilterCriteria{Satellite: "RS"}

	got := f.Apply(logFixture())

	require.Len(t, got, 1)
	assert.Equal(t, "OE3XYZ", got[0].Callsign)
}

func TestFilterCriteria_CombinedConstraints(t *testing.T) {
	f := domain.FilterCriteria{Band: "20m", ModeFilter: "SSB"}

	got := f.Apply(logFixture())

	require.Len(t, got, 1)
	assert.Equal(t, "DL1ABC", got[0].Callsign)
}

func TestUniqueBands(t *testing.T) {
	assert.Equal(t, []string{"20m", "40m"}, domain.UniqueBands(logFixture()))
}

func TestUniqueModes(t *testing.T) {
	assert.Equal(t, []string{"CW", "FT8", "SSB"}, domain.UniqueModes(logFixture()))
}
