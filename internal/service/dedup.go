package service

import "github.com/shadowmov/easyqso/backend/internal/domain"

// Dedupe filters imported candidates against the existing record snapshot,
// returning the candidates to insert and the number dropped as duplicates.
//
// A candidate is a duplicate when callsign (case-insensitive), band and
// mode (exact), frequency (within 0.001 MHz), and timestamp (at minute
// granularity) all match an existing record — or a candidate already
// accepted earlier in the same run, so a file that repeats a contact
// contributes it once.
//
// The scan is O(existing × candidates). Personal logs top out in the low
// thousands of rows, where a flat scan beats maintaining an index.
// Neither input slice is mutated.
func Dedupe(candidates, existing []domain.QSO) (keep []domain.QSO, dropped int) {
	known := make([]domain.QSO, len(existing), len(existing)+len(candidates))
	copy(known, existing)

	keep = make([]domain.QSO, 0, len(candidates))
	for _, c := range candidates {
		if isKnown(c, known) {
			dropped++
			continue
		}
		keep = append(keep, c)
		known = append(known, c)
	}
	return keep, dropped
}

func isKnown(c domain.QSO, known []domain.QSO) bool {
	for _, k := range known {
		if c.IsDuplicateOf(k) {
			return true
		}
	}
	return false
}
