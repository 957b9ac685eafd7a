package service

import (
	"context"
	"fmt"

	"github.com/shadowmov/easyqso/backend/internal/adif"
	"github.com/shadowmov/easyqso/backend/internal/csvlog"
	"github.com/shadowmov/easyqso/backend/internal/repo"
)

// ExportService serializes the full record snapshot to an interchange
// format. ADIF is always rendered in UTC; CSV uses the persisted export
// timezone.
type ExportService struct {
	qsos     repo.QSORepo
	settings *SettingsService
}

// NewExportService constructs an ExportService backed by the provided
// record store and settings.
func NewExportService(qsos repo.QSORepo, settings *SettingsService) *ExportService {
	return &ExportService{qsos: qsos, settings: settings}
}

// ExportADIF returns the whole log as an ADIF document and the number of
// records it contains.
func (s *ExportService) ExportADIF(ctx context.Context) ([]byte, int, error) {
	records, err := s.qsos.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExportService.ExportADIF: %w", err)
	}
	return adif.Encode(records), len(records), nil
}

// ExportCSV returns the whole log as a CSV document and the number of
// records it contains.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, int, error) {
	records, err := s.qsos.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}

	loc, err := s.settings.ExportLocation(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	return csvlog.Encode(records, loc), len(records), nil
}
