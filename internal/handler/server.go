// Package handler implements the HTTP handlers for the EasyQSO API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (health.go, qso.go, transfer.go, settings.go) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/metrics"
	"github.com/shadowmov/easyqso/backend/internal/service"
)

// QSOServicer defines the log-entry operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type QSOServicer interface {
	Create(ctx context.Context, q domain.QSO) (domain.QSO, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.QSO, error)
	List(ctx context.Context, filter domain.FilterCriteria) ([]domain.QSO, error)
	Update(ctx context.Context, q domain.QSO) (domain.QSO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Importer decodes an uploaded file and inserts the surviving records.
type Importer interface {
	ImportADIF(ctx context.Context, data []byte) (domain.ImportResult, error)
	ImportCSV(ctx context.Context, data []byte) (domain.ImportResult, error)
}

// Exporter serializes the full log to an interchange format.
type Exporter interface {
	ExportADIF(ctx context.Context) ([]byte, int, error)
	ExportCSV(ctx context.Context) ([]byte, int, error)
}

// SettingsServicer manages persisted preferences.
type SettingsServicer interface {
	Timezones(ctx context.Context) (service.TimezonePrefs, error)
	SetTimezones(ctx context.Context, p service.TimezonePrefs) error
	OwnQTH(ctx context.Context) (domain.OwnQTH, error)
	SetOwnQTH(ctx context.Context, qth domain.OwnQTH) error
}

// Server holds the handler dependencies. Routes are registered by Routes.
type Server struct {
	qsos     QSOServicer
	importer Importer
	exporter Exporter
	settings SettingsServicer
	metrics  *metrics.Metrics
}

// NewServer constructs the Server with all its dependencies.
// metrics may be nil in tests; observation calls are skipped.
func NewServer(qsos QSOServicer, importer Importer, exporter Exporter, settings SettingsServicer, m *metrics.Metrics) *Server {
	return &Server{qsos: qsos, importer: importer, exporter: exporter, settings: settings, metrics: m}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/qsos", func(r chi.Router) {
		r.Get("/", s.ListQSOs)
		r.Post("/", s.CreateQSO)
		r.Get("/{id}", s.GetQSO)
		r.Put("/{id}", s.UpdateQSO)
		r.Delete("/{id}", s.DeleteQSO)
	})

	r.Post("/import", s.Import)
	r.Get("/export", s.Export)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/timezones", s.GetTimezones)
		r.Put("/timezones", s.PutTimezones)
		r.Get("/zones", s.ListZones)
		r.Get("/qth", s.GetOwnQTH)
		r.Put("/qth", s.PutOwnQTH)
	})
}

// observeImport forwards to metrics when configured.
func (s *Server) observeImport(format string, res domain.ImportResult) {
	if s.metrics != nil {
		s.metrics.ObserveImport(format, res.Imported, res.Duplicates)
	}
}

// observeExport forwards to metrics when configured.
func (s *Server) observeExport(format string, records int) {
	if s.metrics != nil {
		s.metrics.ObserveExport(format, records)
	}
}
