package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/maidenhead"
	"github.com/shadowmov/easyqso/backend/internal/repo"
)

// QSOService implements business logic for individual log entries.
type QSOService struct {
	qsos repo.QSORepo
}

// NewQSOService constructs a QSOService backed by the provided QSORepo.
func NewQSOService(qsos repo.QSORepo) *QSOService {
	return &QSOService{qsos: qsos}
}

// Create validates, normalizes, and persists a new record.
// Returns domain.ErrValidation if input violates business rules.
func (s *QSOService) Create(ctx context.Context, q domain.QSO) (domain.QSO, error) {
	q = normalize(q)
	if err := validateQSO(q); err != nil {
		return domain.QSO{}, err
	}
	result, err := s.qsos.Create(ctx, q)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("service.QSOService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID.
// Returns domain.ErrNotFound if no record with that ID exists.
func (s *QSOService) GetByID(ctx context.Context, id uuid.UUID) (domain.QSO, error) {
	result, err := s.qsos.GetByID(ctx, id)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("service.QSOService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all records matching the filter, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *QSOService) List(ctx context.Context, filter domain.FilterCriteria) ([]domain.QSO, error) {
	records, err := s.qsos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.QSOService.List: %w", err)
	}
	if !filter.IsZero() {
		records = filter.Apply(records)
	}
	if records == nil {
		return []domain.QSO{}, nil
	}
	return records, nil
}

// Update validates, normalizes, and persists changes to an existing record.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// record does not exist.
func (s *QSOService) Update(ctx context.Context, q domain.QSO) (domain.QSO, error) {
	q = normalize(q)
	if err := validateQSO(q); err != nil {
		return domain.QSO{}, err
	}
	result, err := s.qsos.Update(ctx, q)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("service.QSOService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by ID.
// Returns domain.ErrNotFound if the record does not exist.
func (s *QSOService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.qsos.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.QSOService.Delete: %w", err)
	}
	return nil
}

// normalize applies the conventions imported records already follow:
// uppercase callsign, band derived from frequency when not supplied, and
// the standard defaults for mode and signal reports.
func normalize(q domain.QSO) domain.QSO {
	q.Callsign = strings.ToUpper(strings.TrimSpace(q.Callsign))

	if q.Band == "" {
		if band, ok := domain.BandForFrequency(q.Frequency); ok {
			q.Band = band
		} else {
			q.Band = domain.DefaultBand
		}
	}
	if q.Mode == "" {
		q.Mode = domain.DefaultMode
	}
	if q.RSTSent == "" {
		q.RSTSent = domain.DefaultRST
	}
	if q.RSTReceived == "" {
		q.RSTReceived = domain.DefaultRST
	}
	return q
}

// validateQSO enforces business rules common to both Create and Update:
//   - Callsign must be non-empty.
//   - Time must be set.
//   - GridSquare, when present, must match the Maidenhead pattern.
//   - CQ and ITU zones, when present, must be in range.
func validateQSO(q domain.QSO) error {
	if q.Callsign == "" {
		return fmt.Errorf("%w: callsign is required", domain.ErrValidation)
	}
	if q.Time.IsZero() {
		return fmt.Errorf("%w: contact time is required", domain.ErrValidation)
	}
	if q.GridSquare != "" && !maidenhead.IsValid(q.GridSquare) {
		return fmt.Errorf("%w: invalid grid square %q", domain.ErrValidation, q.GridSquare)
	}
	if q.CQZone != "" && !domain.IsValidCQZone(q.CQZone) {
		return fmt.Errorf("%w: CQ zone must be 1-40", domain.ErrValidation)
	}
	if q.ITUZone != "" && !domain.IsValidITUZone(q.ITUZone) {
		return fmt.Errorf("%w: ITU zone must be 1-90", domain.ErrValidation)
	}
	return nil
}
