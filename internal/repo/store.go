package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/normalize"
	"github.com/pkordes/dining-scout/migrations"
)

// VenueRowRepo defines the persistence operations for the venue_rows table.
// Both the Postgres and SQLite implementations satisfy it.
type VenueRowRepo interface {
	RowSource

	// Replace deletes every stored row and inserts rows in order, in a
	// single transaction. It returns the number of rows written.
	Replace(ctx context.Context, rows []domain.RawRow) (int, error)
}

// Store is a database-backed VenueRowRepo together with the handles needed
// to migrate and close it.
type Store struct {
	VenueRowRepo
	sqlDB   *sql.DB
	dialect goose.Dialect
	close   func()
}

// OpenStore connects to a Postgres URL or a SQLite path and verifies the
// connection. Connection failures wrap domain.ErrLoad.
func OpenStore(ctx context.Context, dataSource string) (*Store, error) {
	kind, err := DetectKind(dataSource)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindPostgres:
		return openPostgres(ctx, dataSource)
	case KindSQLite:
		return openSQLite(ctx, dataSource)
	}
	return nil, fmt.Errorf("repo.OpenStore: %w: %s is not a database source", domain.ErrLoad, kind)
}

func openPostgres(ctx context.Context, dsn string) (*Store, error) {
	// pgxpool.New does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenStore: %w: %w", domain.ErrLoad, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenStore: ping: %w: %w", domain.ErrLoad, err)
	}
	// goose needs database/sql; share the pool rather than opening a second one.
	sqlDB := stdlib.OpenDBFromPool(pool)
	return &Store{
		VenueRowRepo: NewPostgresRowRepo(pool),
		sqlDB:        sqlDB,
		dialect:      goose.DialectPostgres,
		close: func() {
			_ = sqlDB.Close()
			pool.Close()
		},
	}, nil
}

func openSQLite(ctx context.Context, dataSource string) (*Store, error) {
	path := strings.TrimPrefix(strings.TrimPrefix(dataSource, "sqlite://"), "sqlite:")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenStore: %w: %w", domain.ErrLoad, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo.OpenStore: ping: %w: %w", domain.ErrLoad, err)
	}
	return &Store{
		VenueRowRepo: NewSQLiteRowRepo(db),
		sqlDB:        db,
		dialect:      goose.DialectSQLite3,
		close:        func() { _ = db.Close() },
	}, nil
}

// Migrate applies all pending migrations from the embedded migrations.FS.
func (s *Store) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.sqlDB, s.dialect)
}

// Close releases the store's connections.
func (s *Store) Close() error {
	s.close()
	return nil
}

// Migrate applies all pending migrations to db using the given dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	return nil
}

// storedColumns are the venue_rows data columns, in table order.
var storedColumns = normalize.Columns

// cellText renders a row value as stored text. nil stays NULL.
// Lists are stored as a JSON array so items containing separators survive
// a reload; see cellsRow.
func cellText(val any) *string {
	var s string
	switch x := val.(type) {
	case nil:
		return nil
	case string:
		s = x
	case []string:
		s = listText(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, it := range x {
			if p := cellText(it); p != nil {
				parts = append(parts, *p)
			}
		}
		s = listText(parts)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		s = strconv.FormatInt(x, 10)
	case int:
		s = strconv.Itoa(x)
	default:
		s = fmt.Sprint(x)
	}
	return &s
}

func listText(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		// A []string always marshals; keep the legacy form just in case.
		return strings.Join(items, "; ")
	}
	return string(b)
}

// storedList decodes a list cell written by cellText. Text that is not a
// JSON array of strings (rows written by hand, say) is left for
// normalize.SplitList.
func storedList(s string) ([]string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "[") {
		return nil, false
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

// rowCells looks up every stored column in a row that has already been
// mapped onto canonical column names by normalize.ToRow.
func rowCells(row domain.RawRow) []*string {
	cells := make([]*string, len(storedColumns))
	for i, col := range storedColumns {
		cells[i] = cellText(row[col])
	}
	return cells
}

// cellsRow builds a RawRow from stored cells. NULL becomes nil.
func cellsRow(cells []*string) domain.RawRow {
	row := make(domain.RawRow, len(storedColumns))
	for i, col := range storedColumns {
		if cells[i] == nil {
			row[col] = nil
			continue
		}
		if col == normalize.ColDiscounts {
			if items, ok := storedList(*cells[i]); ok {
				row[col] = items
				continue
			}
		}
		row[col] = *cells[i]
	}
	return row
}
