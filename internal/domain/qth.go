package domain

import "strconv"

// OwnQTH is the operator's own station profile: where the station transmits
// from. It is a single persisted record, edited from the settings screen and
// used to prefill log entries. It is never written by the import codecs.
type OwnQTH struct {
	Location   string  `json:"location"`
	GridSquare string  `json:"grid_square"`
	CQZone     string  `json:"cq_zone"`
	ITUZone    string  `json:"itu_zone"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// HasCoordinate reports whether the profile carries a real coordinate.
// (0,0) is reserved as "unset", same convention as QSO records.
func (q OwnQTH) HasCoordinate() bool {
	return q.Latitude != 0 || q.Longitude != 0
}

// IsValidCQZone reports whether s is a CQ zone number in [1,40].
func IsValidCQZone(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 40
}

// IsValidITUZone reports whether s is an ITU zone number in [1,90].
func IsValidITUZone(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 90
}
