// Package tz renders and parses QSO timestamps against UTC, the server's
// local zone, or a fixed UTC-offset pseudo-zone. Both interchange formats
// lean on it: ADIF mandates UTC, CSV uses a user-configured zone.
//
// Zones are addressed by stable identifier strings ("UTC", "Local",
// "UTC+8", or any IANA name) so a preference can be persisted and resolved
// later on a different machine.
package tz

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Wire layouts, in Go reference-time notation. ADIF concatenates bare
// digits; CSV is human-readable.
const (
	ADIFDateLayout = "20060102"
	ADIFTimeLayout = "1504"
	CSVDateLayout  = "2006-01-02"
	CSVTimeLayout  = "15:04"
)

// timeNow is swapped out by tests that exercise the "fall back to now"
// recovery path.
var timeNow = time.Now

// Zone couples a persistable identifier with a resolved location and a
// human display label for settings pickers.
type Zone struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	location *time.Location
}

// Location returns the resolved *time.Location for the zone.
func (z Zone) Location() *time.Location { return z.location }

// SelectableZones returns the zone list offered to the user, in picker
// order: the server's local zone, UTC, then the fixed offsets UTC-12
// through UTC+14.
func SelectableZones() []Zone {
	zones := make([]Zone, 0, 28)
	zones = append(zones,
		Zone{ID: "Local", Label: localLabel(), location: time.Local},
		Zone{ID: "UTC", Label: "UTC", location: time.UTC},
	)
	for off := -12; off <= 14; off++ {
		if off == 0 {
			continue
		}
		id := offsetID(off)
		zones = append(zones, Zone{ID: id, Label: id, location: time.FixedZone(id, off*3600)})
	}
	return zones
}

// localLabel renders the local zone as "Local (CST)" style, falling back to
// the bare name when no abbreviation is known.
func localLabel() string {
	abbr, _ := timeNow().Zone()
	if abbr == "" {
		return "Local"
	}
	return "Local (" + abbr + ")"
}

func offsetID(hours int) string {
	if hours >= 0 {
		return "UTC+" + strconv.Itoa(hours)
	}
	return "UTC" + strconv.Itoa(hours)
}

// Resolve maps a persisted zone identifier to a location. An empty
// identifier resolves to UTC, matching the default for both import and
// export preferences. "UTC±N" forms resolve to fixed offsets; anything
// else is tried as an IANA zone name.
func Resolve(id string) (*time.Location, error) {
	switch id {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	if rest, ok := strings.CutPrefix(id, "UTC"); ok {
		hours, err := strconv.Atoi(rest)
		if err != nil || hours < -12 || hours > 14 {
			return nil, fmt.Errorf("tz.Resolve: unknown offset zone %q", id)
		}
		return time.FixedZone(offsetID(hours), hours*3600), nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("tz.Resolve: %w", err)
	}
	return loc, nil
}

// Format renders t under loc with the given layout. Go layouts are
// locale-independent, so output never varies with system locale.
func Format(t time.Time, layout string, loc *time.Location) string {
	return t.In(loc).Format(layout)
}

// Combine parses a date-only string plus an optional HHmm-style time-of-day
// string into a single instant under loc. A time string that is empty or
// carries fewer than four digits yields start-of-day. Returns ok=false when
// the date does not parse.
//
// The time string is reduced to its digits first, so "1234", "12:34", and
// "12:34:56" all resolve the same hour and minute.
func Combine(dateStr, timeStr, dateLayout string, loc *time.Location) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, false
	}

	digits := digitsOf(timeStr)
	if len(digits) < 4 {
		return day, true
	}
	hour, _ := strconv.Atoi(digits[:2])
	minute, _ := strconv.Atoi(digits[2:4])
	if hour > 23 || minute > 59 {
		return day, true
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), true
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatADIF renders t as the ADIF (date, time) pair, always under UTC as
// the ADIF standard requires.
func FormatADIF(t time.Time) (date, tod string) {
	return Format(t, ADIFDateLayout, time.UTC), Format(t, ADIFTimeLayout, time.UTC)
}

// ParseADIF parses an ADIF (date, time) pair. ADIF times are UTC, but some
// legacy exports wrote local time, so a failed UTC parse retries under the
// local zone. If both fail the record still imports, stamped "now" — a
// lossy but non-fatal recovery.
func ParseADIF(dateStr, timeStr string) time.Time {
	if t, ok := Combine(dateStr, timeStr, ADIFDateLayout, time.UTC); ok {
		return t
	}
	if t, ok := Combine(dateStr, timeStr, ADIFDateLayout, time.Local); ok {
		return t
	}
	return timeNow()
}

// FormatCSV renders t as the CSV (date, time) pair under the user-selected
// export zone.
func FormatCSV(t time.Time, loc *time.Location) (date, tod string) {
	return Format(t, CSVDateLayout, loc), Format(t, CSVTimeLayout, loc)
}

// ParseCSV parses a CSV (date, time) pair under the user-selected import
// zone, falling back to "now" when the date is unusable.
func ParseCSV(dateStr, timeStr string, loc *time.Location) time.Time {
	if t, ok := Combine(dateStr, timeStr, CSVDateLayout, loc); ok {
		return t
	}
	return timeNow()
}
