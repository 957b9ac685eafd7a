// Package domain contains the core data types for the EasyQSO logbook backend.
// This package has zero heavyweight dependencies and is imported by every
// other internal package (repo, service, handler, codecs).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default field values applied when an imported record omits a required field.
const (
	DefaultBand = "20m"
	DefaultMode = "SSB"
	DefaultRST  = "59"
)

// ADIFVersion is the ADIF specification version written in export headers.
const ADIFVersion = "3.1.0"

// QSO represents a single logged two-way radio contact.
//
// Time is always an absolute instant (stored as timestamptz, compared in
// UTC); any textual rendering must declare its timezone. Frequency and
// RxFrequency are in MHz; zero means "not recorded", not a literal 0 MHz
// contact. Latitude/Longitude of (0,0) means "no coordinate" — a real
// contact at exactly (0,0) cannot be represented.
type QSO struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Callsign    string    `json:"callsign"`
	Time        time.Time `json:"time"`
	Band        string    `json:"band"`
	Mode        string    `json:"mode"`
	Frequency   float64   `json:"frequency,omitempty"`
	RxFrequency float64   `json:"rx_frequency,omitempty"`
	TxPower     string    `json:"tx_power,omitempty"`
	RSTSent     string    `json:"rst_sent"`
	RSTReceived string    `json:"rst_received"`
	Name        string    `json:"name,omitempty"`
	QTH         string    `json:"qth,omitempty"`
	GridSquare  string    `json:"grid_square,omitempty"`
	CQZone      string    `json:"cq_zone,omitempty"`
	ITUZone     string    `json:"itu_zone,omitempty"`
	Satellite   string    `json:"satellite,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCoordinate reports whether the record carries a real coordinate.
// (0,0) is reserved as "unset".
func (q QSO) HasCoordinate() bool {
	return q.Latitude != 0 || q.Longitude != 0
}

// ImportResult summarizes a completed import for user feedback: how many
// records were inserted and how many parsed records were dropped as
// duplicates. CSV imports never deduplicate, so Duplicates is always 0
// there.
type ImportResult struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
}

// frequencyEpsilon is the tolerance (MHz) under which two frequencies are
// considered equal for deduplication.
const frequencyEpsilon = 0.001

// IsDuplicateOf reports whether q and other describe the same contact:
// callsigns equal case-insensitively, band and mode equal exactly,
// frequencies within 0.001 MHz, and timestamps equal at minute granularity.
func (q QSO) IsDuplicateOf(other QSO) bool {
	if !strings.EqualFold(q.Callsign, other.Callsign) {
		return false
	}
	if q.Band != other.Band || q.Mode != other.Mode {
		return false
	}
	diff := q.Frequency - other.Frequency
	if diff < 0 {
		diff = -diff
	}
	if diff >= frequencyEpsilon {
		return false
	}
	return q.Time.Truncate(time.Minute).Equal(other.Time.Truncate(time.Minute))
}
