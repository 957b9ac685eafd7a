// Package repo contains all database access logic for the EasyQSO backend.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QSORepo defines the persistence operations for QSO records. It is the
// "record store" collaborator of the import/export core: List supplies the
// full snapshot for deduplication and export, InsertMany is the sink for
// surviving import candidates.
type QSORepo interface {
	// Create inserts a single record and returns it with DB-generated
	// id, created_at, and updated_at populated.
	Create(ctx context.Context, q domain.QSO) (domain.QSO, error)

	// InsertMany inserts all records in one batch. Used by imports; the
	// batch has already been deduplicated.
	InsertMany(ctx context.Context, qs []domain.QSO) error

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.QSO, error)

	// List returns every record ordered by contact time descending
	// (most recent first).
	List(ctx context.Context) ([]domain.QSO, error)

	// Update overwrites the mutable fields of an existing record and
	// returns the updated row. Returns domain.ErrNotFound if absent.
	Update(ctx context.Context, q domain.QSO) (domain.QSO, error)

	// Delete removes a record by ID. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgQSORepo is the Postgres implementation of QSORepo.
type pgQSORepo struct {
	db db
}

// NewQSORepo constructs a QSORepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewQSORepo(db db) QSORepo {
	return &pgQSORepo{db: db}
}

const qsoColumns = `id, callsign, qso_time, band, mode, frequency, rx_frequency,
	tx_power, rst_sent, rst_received, name, qth, grid_square, cq_zone,
	itu_zone, satellite, remarks, latitude, longitude, created_at, updated_at`

// Create inserts a new QSO row and returns the full persisted record.
func (r *pgQSORepo) Create(ctx context.Context, q domain.QSO) (domain.QSO, error) {
	const query = `
		INSERT INTO qsos (callsign, qso_time, band, mode, frequency, rx_frequency,
		                  tx_power, rst_sent, rst_received, name, qth, grid_square,
		                  cq_zone, itu_zone, satellite, remarks, latitude, longitude)
		VALUES (@callsign, @qso_time, @band, @mode, @frequency, @rx_frequency,
		        @tx_power, @rst_sent, @rst_received, @name, @qth, @grid_square,
		        @cq_zone, @itu_zone, @satellite, @remarks, @latitude, @longitude)
		RETURNING ` + qsoColumns

	row := r.db.QueryRow(ctx, query, namedArgs(q))
	result, err := scanQSO(row)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("repo.QSORepo.Create: %w", err)
	}
	return result, nil
}

// InsertMany inserts the batch in a single round trip via pgx.Batch.
func (r *pgQSORepo) InsertMany(ctx context.Context, qs []domain.QSO) error {
	if len(qs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO qsos (callsign, qso_time, band, mode, frequency, rx_frequency,
		                  tx_power, rst_sent, rst_received, name, qth, grid_square,
		                  cq_zone, itu_zone, satellite, remarks, latitude, longitude)
		VALUES (@callsign, @qso_time, @band, @mode, @frequency, @rx_frequency,
		        @tx_power, @rst_sent, @rst_received, @name, @qth, @grid_square,
		        @cq_zone, @itu_zone, @satellite, @remarks, @latitude, @longitude)`

	batch := &pgx.Batch{}
	for _, q := range qs {
		batch.Queue(query, namedArgs(q))
	}

	// SendBatch is available on pool, conn, and tx alike, but the minimal
	// db interface omits it, so issue the statements individually when the
	// underlying type does not expose it.
	if sender, ok := r.db.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	}); ok {
		results := sender.SendBatch(ctx, batch)
		defer results.Close()
		for range qs {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("repo.QSORepo.InsertMany: %w", err)
			}
		}
		return results.Close()
	}

	for _, q := range qs {
		if _, err := r.db.Exec(ctx, query, namedArgs(q)); err != nil {
			return fmt.Errorf("repo.QSORepo.InsertMany: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a record by primary key.
func (r *pgQSORepo) GetByID(ctx context.Context, id uuid.UUID) (domain.QSO, error) {
	const query = `SELECT ` + qsoColumns + ` FROM qsos WHERE id = @id`

	row := r.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	result, err := scanQSO(row)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("repo.QSORepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all records ordered by contact time descending.
func (r *pgQSORepo) List(ctx context.Context) ([]domain.QSO, error) {
	const query = `SELECT ` + qsoColumns + ` FROM qsos ORDER BY qso_time DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repo.QSORepo.List: %w", err)
	}
	defer rows.Close()

	var qsos []domain.QSO
	for rows.Next() {
		q, err := scanQSO(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.QSORepo.List: scan: %w", err)
		}
		qsos = append(qsos, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QSORepo.List: rows: %w", err)
	}

	return qsos, nil
}

// Update overwrites the mutable fields of a record and returns the updated row.
func (r *pgQSORepo) Update(ctx context.Context, q domain.QSO) (domain.QSO, error) {
	const query = `
		UPDATE qsos
		SET callsign     = @callsign,
		    qso_time     = @qso_time,
		    band         = @band,
		    mode         = @mode,
		    frequency    = @frequency,
		    rx_frequency = @rx_frequency,
		    tx_power     = @tx_power,
		    rst_sent     = @rst_sent,
		    rst_received = @rst_received,
		    name         = @name,
		    qth          = @qth,
		    grid_square  = @grid_square,
		    cq_zone      = @cq_zone,
		    itu_zone     = @itu_zone,
		    satellite    = @satellite,
		    remarks      = @remarks,
		    latitude     = @latitude,
		    longitude    = @longitude,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + qsoColumns

	args := namedArgs(q)
	args["id"] = q.ID

	row := r.db.QueryRow(ctx, query, args)
	result, err := scanQSO(row)
	if err != nil {
		return domain.QSO{}, fmt.Errorf("repo.QSORepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by primary key.
func (r *pgQSORepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM qsos WHERE id = @id`

	tag, err := r.db.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.QSORepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.QSORepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// namedArgs maps the insertable/updatable fields of a record.
func namedArgs(q domain.QSO) pgx.NamedArgs {
	return pgx.NamedArgs{
		"callsign":     q.Callsign,
		"qso_time":     q.Time,
		"band":         q.Band,
		"mode":         q.Mode,
		"frequency":    q.Frequency,
		"rx_frequency": q.RxFrequency,
		"tx_power":     q.TxPower,
		"rst_sent":     q.RSTSent,
		"rst_received": q.RSTReceived,
		"name":         q.Name,
		"qth":          q.QTH,
		"grid_square":  q.GridSquare,
		"cq_zone":      q.CQZone,
		"itu_zone":     q.ITUZone,
		"satellite":    q.Satellite,
		"remarks":      q.Remarks,
		"latitude":     q.Latitude,
		"longitude":    q.Longitude,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanQSO to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanQSO maps a single database row into a domain.QSO.
func scanQSO(s scanner) (domain.QSO, error) {
	var (
		q  domain.QSO
		id pgtype.UUID
	)

	err := s.Scan(
		&id, &q.Callsign, &q.Time, &q.Band, &q.Mode, &q.Frequency,
		&q.RxFrequency, &q.TxPower, &q.RSTSent, &q.RSTReceived, &q.Name,
		&q.QTH, &q.GridSquare, &q.CQZone, &q.ITUZone, &q.Satellite,
		&q.Remarks, &q.Latitude, &q.Longitude, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QSO{}, domain.ErrNotFound
		}
		return domain.QSO{}, err
	}

	q.ID = uuid.UUID(id.Bytes)
	return q, nil
}
