package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/dining-scout/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgRowRepo is the Postgres implementation of VenueRowRepo.
type pgRowRepo struct {
	db db
}

// NewPostgresRowRepo constructs a VenueRowRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresRowRepo(db db) VenueRowRepo {
	return &pgRowRepo{db: db}
}

var selectRowsSQL = `
		SELECT ` + strings.Join(storedColumns, ", ") + `
		FROM venue_rows
		ORDER BY position`

// Rows returns all stored rows in position order.
func (r *pgRowRepo) Rows(ctx context.Context) (domain.RowBatch, error) {
	rows, err := r.db.Query(ctx, selectRowsSQL)
	if err != nil {
		return domain.RowBatch{}, fmt.Errorf("repo.PostgresRowRepo.Rows: %w: %w", domain.ErrLoad, err)
	}
	defer rows.Close()

	var batch domain.RowBatch
	for rows.Next() {
		row, err := scanPgRow(rows)
		if err != nil {
			return domain.RowBatch{}, fmt.Errorf("repo.PostgresRowRepo.Rows: scan: %w: %w", domain.ErrLoad, err)
		}
		batch.Rows = append(batch.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.RowBatch{}, fmt.Errorf("repo.PostgresRowRepo.Rows: rows: %w: %w", domain.ErrLoad, err)
	}
	return batch, nil
}

// Replace rewrites the table inside one transaction.
func (r *pgRowRepo) Replace(ctx context.Context, rows []domain.RawRow) (int, error) {
	const insertSQL = `
		INSERT INTO venue_rows (position, name, loc, type, slug, id, ot, disc, hh, tips, lat, lon)
		VALUES (@position, @name, @loc, @type, @slug, @id, @ot, @disc, @hh, @tips, @lat, @lon)`

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM venue_rows`); err != nil {
			return err
		}
		for i, row := range rows {
			args := pgx.NamedArgs{"position": i + 1}
			for j, cell := range rowCells(row) {
				args[storedColumns[j]] = cell // nil becomes NULL
			}
			if _, err := tx.Exec(ctx, insertSQL, args); err != nil {
				return fmt.Errorf("insert row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.PostgresRowRepo.Replace: %w", err)
	}
	return len(rows), nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPgRow maps one venue_rows record into a RawRow, keeping NULLs as nil.
func scanPgRow(s scanner) (domain.RawRow, error) {
	texts := make([]pgtype.Text, len(storedColumns))
	dest := make([]any, len(texts))
	for i := range texts {
		dest[i] = &texts[i]
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	cells := make([]*string, len(texts))
	for i, t := range texts {
		if t.Valid {
			v := t.String
			cells[i] = &v
		}
	}
	return cellsRow(cells), nil
}
