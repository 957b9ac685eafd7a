// Package service contains the business logic for the EasyQSO backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/shadowmov/easyqso/backend/internal/adif"
	"github.com/shadowmov/easyqso/backend/internal/csvlog"
	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/repo"
)

// ImportService turns an uploaded log file into stored records: decode,
// normalize, deduplicate (ADIF only), insert. The already-parsed batch is
// discarded whole if the insert fails; there is no partial commit.
type ImportService struct {
	qsos     repo.QSORepo
	settings *SettingsService
}

// NewImportService constructs an ImportService backed by the provided
// record store and settings.
func NewImportService(qsos repo.QSORepo, settings *SettingsService) *ImportService {
	return &ImportService{qsos: qsos, settings: settings}
}

// ImportADIF imports an ADIF document. Parsed candidates are checked
// against a snapshot of the existing records and duplicates are dropped;
// the survivors are inserted in one batch.
//
// Returns domain.ErrUnreadableFile when the payload is not valid text.
// Decode-level problems inside the document never fail the import — bad
// records are skipped or recovered per field.
func (s *ImportService) ImportADIF(ctx context.Context, data []byte) (domain.ImportResult, error) {
	if !utf8.Valid(data) {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportADIF: %w", domain.ErrUnreadableFile)
	}

	candidates := adif.Decode(string(data))

	existing, err := s.qsos.List(ctx)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportADIF: cannot get existing records: %w", err)
	}

	keep, dropped := Dedupe(candidates, existing)
	if err := s.qsos.InsertMany(ctx, keep); err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportADIF: save failed: %w", err)
	}

	return domain.ImportResult{Imported: len(keep), Duplicates: dropped}, nil
}

// ImportCSV imports a CSV document under the persisted import timezone.
// Every parsed row is inserted unconditionally — CSV import performs no
// deduplication.
//
// Returns domain.ErrUnreadableFile for non-text payloads and
// domain.ErrMalformedFile for a document with no data rows.
func (s *ImportService) ImportCSV(ctx context.Context, data []byte) (domain.ImportResult, error) {
	if !utf8.Valid(data) {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportCSV: %w", domain.ErrUnreadableFile)
	}

	loc, err := s.settings.ImportLocation(ctx)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportCSV: %w", err)
	}

	records, err := csvlog.Decode(string(data), loc)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportCSV: %w", err)
	}

	if err := s.qsos.InsertMany(ctx, records); err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.ImportCSV: save failed: %w", err)
	}

	return domain.ImportResult{Imported: len(records)}, nil
}
