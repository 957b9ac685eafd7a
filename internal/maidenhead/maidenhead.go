// Package maidenhead converts between geographic coordinates and Maidenhead
// grid-square strings as used in amateur radio. All functions are pure.
//
// A grid square encodes longitude/latitude into nested cells: two field
// letters A–R (20°×10°), two square digits (2°×1°), and optionally two
// sub-square letters a–x (1/12°×1/24°).
package maidenhead

import "regexp"

// gridPattern accepts 4- or 6-character grid squares in any letter case.
var gridPattern = regexp.MustCompile(`(?i)^[A-R]{2}[0-9]{2}([a-x]{2})?$`)

// IsValid reports whether s is a syntactically valid grid square.
// 5-character strings are rejected (the optional sub-square suffix is
// two characters or nothing).
func IsValid(s string) bool {
	return gridPattern.MatchString(s)
}

// cell sizes in degrees
const (
	fieldLonDeg  = 20.0
	fieldLatDeg  = 10.0
	squareLonDeg = 2.0
	squareLatDeg = 1.0
	subLonDeg    = squareLonDeg / 24.0
	subLatDeg    = squareLatDeg / 24.0
)

// FromCoordinate returns the 6-character grid square containing the given
// coordinate. By convention the field letters are uppercase and the
// sub-square letters lowercase.
func FromCoordinate(lat, lon float64) string {
	// Shift into the positive domain used by the encoding.
	lon += 180
	lat += 90

	// The north pole and the antimeridian sit on the outer edge of the last
	// cell; nudge them inside so indexing stays within A–R / a–x.
	if lon >= 360 {
		lon = 360 - subLonDeg/2
	}
	if lat >= 180 {
		lat = 180 - subLatDeg/2
	}

	fieldLon := int(lon / fieldLonDeg)
	fieldLat := int(lat / fieldLatDeg)

	lonRem := lon - float64(fieldLon)*fieldLonDeg
	latRem := lat - float64(fieldLat)*fieldLatDeg
	squareLon := int(lonRem / squareLonDeg)
	squareLat := int(latRem / squareLatDeg)

	subLon := int((lonRem - float64(squareLon)*squareLonDeg) / subLonDeg)
	subLat := int((latRem - float64(squareLat)*squareLatDeg) / subLatDeg)

	return string([]byte{
		'A' + byte(fieldLon),
		'A' + byte(fieldLat),
		'0' + byte(squareLon),
		'0' + byte(squareLat),
		'a' + byte(subLon),
		'a' + byte(subLat),
	})
}

// ToCoordinate returns the center of the smallest cell a grid square
// resolves: sub-square precision for 6-character input, square precision
// otherwise. A 5-character string fails validation, so the sub-square
// suffix is all-or-nothing. Returns ok=false if the string does not match
// the grid pattern.
func ToCoordinate(grid string) (lat, lon float64, ok bool) {
	if !IsValid(grid) || len(grid) < 4 {
		return 0, 0, false
	}

	f1 := upper(grid[0]) - 'A'
	f2 := upper(grid[1]) - 'A'
	s1 := grid[2] - '0'
	s2 := grid[3] - '0'

	lon = float64(f1)*fieldLonDeg + float64(s1)*squareLonDeg - 180
	lat = float64(f2)*fieldLatDeg + float64(s2)*squareLatDeg - 90

	if len(grid) >= 6 {
		sub1 := lower(grid[4]) - 'a'
		sub2 := lower(grid[5]) - 'a'
		lon += float64(sub1)*subLonDeg + subLonDeg/2
		lat += float64(sub2)*subLatDeg + subLatDeg/2
		return lat, lon, true
	}

	lon += squareLonDeg / 2
	lat += squareLatDeg / 2
	return lat, lon, true
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
