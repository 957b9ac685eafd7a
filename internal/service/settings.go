package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/maidenhead"
	"github.com/shadowmov/easyqso/backend/internal/repo"
	"github.com/shadowmov/easyqso/backend/internal/tz"
)

// TimezonePrefs carries the two independently settable zone preferences as
// persistable identifier strings. Empty means "never set", which resolves
// to UTC for both directions.
type TimezonePrefs struct {
	ExportTimezone string `json:"export_timezone"`
	ImportTimezone string `json:"import_timezone"`
}

// SettingsService manages persisted preferences: the import/export timezone
// choices and the operator's own-QTH profile.
type SettingsService struct {
	prefs repo.PrefRepo
}

// NewSettingsService constructs a SettingsService backed by the provided PrefRepo.
func NewSettingsService(prefs repo.PrefRepo) *SettingsService {
	return &SettingsService{prefs: prefs}
}

// Timezones returns both persisted zone identifiers. Keys never set report
// as "UTC" rather than empty so clients can show the effective value.
func (s *SettingsService) Timezones(ctx context.Context) (TimezonePrefs, error) {
	exportID, err := s.zoneID(ctx, repo.PrefExportTimezone)
	if err != nil {
		return TimezonePrefs{}, fmt.Errorf("service.SettingsService.Timezones: %w", err)
	}
	importID, err := s.zoneID(ctx, repo.PrefImportTimezone)
	if err != nil {
		return TimezonePrefs{}, fmt.Errorf("service.SettingsService.Timezones: %w", err)
	}
	return TimezonePrefs{ExportTimezone: exportID, ImportTimezone: importID}, nil
}

// SetTimezones persists the given zone preferences. Either field may be
// empty to leave that preference unchanged. Identifiers must resolve.
func (s *SettingsService) SetTimezones(ctx context.Context, p TimezonePrefs) error {
	pairs := []struct{ key, id string }{
		{repo.PrefExportTimezone, p.ExportTimezone},
		{repo.PrefImportTimezone, p.ImportTimezone},
	}
	for _, pair := range pairs {
		if pair.id == "" {
			continue
		}
		if _, err := tz.Resolve(pair.id); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", domain.ErrValidation, pair.id)
		}
		if err := s.prefs.Set(ctx, pair.key, pair.id); err != nil {
			return fmt.Errorf("service.SettingsService.SetTimezones: %w", err)
		}
	}
	return nil
}

// ExportLocation resolves the persisted export timezone, defaulting to UTC
// when unset or when the stored identifier no longer resolves.
func (s *SettingsService) ExportLocation(ctx context.Context) (*time.Location, error) {
	return s.location(ctx, repo.PrefExportTimezone)
}

// ImportLocation resolves the persisted import timezone, defaulting to UTC
// when unset or when the stored identifier no longer resolves.
func (s *SettingsService) ImportLocation(ctx context.Context) (*time.Location, error) {
	return s.location(ctx, repo.PrefImportTimezone)
}

func (s *SettingsService) zoneID(ctx context.Context, key string) (string, error) {
	id, err := s.prefs.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "UTC", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SettingsService) location(ctx context.Context, key string) (*time.Location, error) {
	id, err := s.prefs.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return time.UTC, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.SettingsService: read %s: %w", key, err)
	}
	loc, err := tz.Resolve(id)
	if err != nil {
		// A stale identifier from an old install; fall back rather than
		// block imports and exports.
		return time.UTC, nil
	}
	return loc, nil
}

// OwnQTH returns the operator's own-station profile. Keys never set yield
// a zero profile, matching a fresh install.
func (s *SettingsService) OwnQTH(ctx context.Context) (domain.OwnQTH, error) {
	var qth domain.OwnQTH
	var err error

	if qth.Location, err = s.prefString(ctx, repo.PrefQTHLocation); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	if qth.GridSquare, err = s.prefString(ctx, repo.PrefQTHGridSquare); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	if qth.CQZone, err = s.prefString(ctx, repo.PrefQTHCQZone); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	if qth.ITUZone, err = s.prefString(ctx, repo.PrefQTHITUZone); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	if qth.Latitude, err = s.prefFloat(ctx, repo.PrefQTHLatitude); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	if qth.Longitude, err = s.prefFloat(ctx, repo.PrefQTHLongitude); err != nil {
		return domain.OwnQTH{}, fmt.Errorf("service.SettingsService.OwnQTH: %w", err)
	}
	return qth, nil
}

// SetOwnQTH validates and persists the own-station profile.
// Returns domain.ErrValidation when the grid square or zones are invalid.
func (s *SettingsService) SetOwnQTH(ctx context.Context, qth domain.OwnQTH) error {
	if qth.GridSquare != "" && !maidenhead.IsValid(qth.GridSquare) {
		return fmt.Errorf("%w: invalid grid square %q", domain.ErrValidation, qth.GridSquare)
	}
	if qth.CQZone != "" && !domain.IsValidCQZone(qth.CQZone) {
		return fmt.Errorf("%w: CQ zone must be 1-40", domain.ErrValidation)
	}
	if qth.ITUZone != "" && !domain.IsValidITUZone(qth.ITUZone) {
		return fmt.Errorf("%w: ITU zone must be 1-90", domain.ErrValidation)
	}

	pairs := []struct{ key, value string }{
		{repo.PrefQTHLocation, qth.Location},
		{repo.PrefQTHGridSquare, qth.GridSquare},
		{repo.PrefQTHCQZone, qth.CQZone},
		{repo.PrefQTHITUZone, qth.ITUZone},
		{repo.PrefQTHLatitude, strconv.FormatFloat(qth.Latitude, 'f', -1, 64)},
		{repo.PrefQTHLongitude, strconv.FormatFloat(qth.Longitude, 'f', -1, 64)},
	}
	for _, pair := range pairs {
		if err := s.prefs.Set(ctx, pair.key, pair.value); err != nil {
			return fmt.Errorf("service.SettingsService.SetOwnQTH: %w", err)
		}
	}
	return nil
}

func (s *SettingsService) prefString(ctx context.Context, key string) (string, error) {
	v, err := s.prefs.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *SettingsService) prefFloat(ctx context.Context, key string) (float64, error) {
	v, err := s.prefString(ctx, key)
	if err != nil || v == "" {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, nil // stale value; treat as unset
	}
	return f, nil
}
