package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/dining-scout/internal/domain"
)

// sqliteRowRepo is the SQLite implementation of VenueRowRepo.
type sqliteRowRepo struct {
	db *sql.DB
}

// NewSQLiteRowRepo constructs a VenueRowRepo backed by a SQLite *sql.DB.
func NewSQLiteRowRepo(db *sql.DB) VenueRowRepo {
	return &sqliteRowRepo{db: db}
}

// Rows returns all stored rows in position order.
func (r *sqliteRowRepo) Rows(ctx context.Context) (domain.RowBatch, error) {
	rows, err := r.db.QueryContext(ctx, selectRowsSQL)
	if err != nil {
		return domain.RowBatch{}, fmt.Errorf("repo.SQLiteRowRepo.Rows: %w: %w", domain.ErrLoad, err)
	}
	defer rows.Close()

	var batch domain.RowBatch
	for rows.Next() {
		texts := make([]sql.NullString, len(storedColumns))
		dest := make([]any, len(texts))
		for i := range texts {
			dest[i] = &texts[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return domain.RowBatch{}, fmt.Errorf("repo.SQLiteRowRepo.Rows: scan: %w: %w", domain.ErrLoad, err)
		}
		cells := make([]*string, len(texts))
		for i, t := range texts {
			if t.Valid {
				v := t.String
				cells[i] = &v
			}
		}
		batch.Rows = append(batch.Rows, cellsRow(cells))
	}
	if err := rows.Err(); err != nil {
		return domain.RowBatch{}, fmt.Errorf("repo.SQLiteRowRepo.Rows: rows: %w: %w", domain.ErrLoad, err)
	}
	return batch, nil
}

// Replace rewrites the table inside one transaction.
func (r *sqliteRowRepo) Replace(ctx context.Context, rows []domain.RawRow) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(storedColumns)+1), ", ")
	insertSQL := `INSERT INTO venue_rows (position, ` + strings.Join(storedColumns, ", ") + `) VALUES (` + placeholders + `)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repo.SQLiteRowRepo.Replace: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM venue_rows`); err != nil {
		return 0, fmt.Errorf("repo.SQLiteRowRepo.Replace: delete: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("repo.SQLiteRowRepo.Replace: prepare: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := []any{i + 1}
		for _, cell := range rowCells(row) {
			args = append(args, cell)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("repo.SQLiteRowRepo.Replace: insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repo.SQLiteRowRepo.Replace: commit: %w", err)
	}
	return len(rows), nil
}
