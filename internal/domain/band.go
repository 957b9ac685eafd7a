package domain

// bandEdges maps an amateur band name to its frequency range in MHz.
// Order matters only for readability; ranges do not overlap.
var bandEdges = []struct {
	name      string
	low, high float64
}{
	{"160m", 1.8, 2.0},
	{"80m", 3.5, 4.0},
	{"40m", 7.0, 7.3},
	{"30m", 10.1, 10.15},
	{"20m", 14.0, 14.35},
	{"17m", 18.068, 18.168},
	{"15m", 21.0, 21.45},
	{"12m", 24.89, 24.99},
	{"10m", 28.0, 29.7},
	{"6m", 50.0, 54.0},
	{"2m", 144.0, 148.0},
	{"70cm", 420.0, 450.0},
}

// BandForFrequency returns the amateur band containing the given frequency
// in MHz, or ("", false) when the frequency falls outside every band.
func BandForFrequency(mhz float64) (string, bool) {
	for _, b := range bandEdges {
		if mhz >= b.low && mhz <= b.high {
			return b.name, true
		}
	}
	return "", false
}
