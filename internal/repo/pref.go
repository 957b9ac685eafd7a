package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

// Preference keys. Timezone values are zone identifier strings understood
// by tz.Resolve; QTH values mirror the own-station profile fields.
const (
	PrefExportTimezone = "exportTimezone"
	PrefImportTimezone = "importTimezone"

	PrefQTHLocation   = "ownQTHLocation"
	PrefQTHGridSquare = "ownQTHGridSquare"
	PrefQTHCQZone     = "ownQTHCQZone"
	PrefQTHITUZone    = "ownQTHITUZone"
	PrefQTHLatitude   = "ownQTHLatitude"
	PrefQTHLongitude  = "ownQTHLongitude"
)

// PrefRepo persists small key/value preferences: timezone choices and the
// own-station QTH profile. Absent keys are not an error at the service
// layer — every preference has a default.
type PrefRepo interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been set.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}

// pgPrefRepo is the Postgres implementation of PrefRepo.
type pgPrefRepo struct {
	db db
}

// NewPrefRepo constructs a PrefRepo backed by the provided db connection.
func NewPrefRepo(db db) PrefRepo {
	return &pgPrefRepo{db: db}
}

func (r *pgPrefRepo) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM preferences WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, query, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.PrefRepo.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.PrefRepo.Get: %w", err)
	}
	return value, nil
}

func (r *pgPrefRepo) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO preferences (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.PrefRepo.Set: %w", err)
	}
	return nil
}
