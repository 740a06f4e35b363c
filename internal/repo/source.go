// Package repo contains all data access for Dining Scout: reading raw venue
// rows from files and databases, and writing them back for seeding.
// No normalization happens here; sources hand untrusted rows to the
// normalize package unchanged, apart from row-level parsing.
package repo

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pkordes/dining-scout/internal/domain"
)

// RowSource yields the raw rows of one load cycle.
// Implementations return an error wrapping domain.ErrLoad when the
// underlying data is missing or unreadable as a whole; individual
// malformed records are skipped and counted in RowBatch.Skipped.
type RowSource interface {
	Rows(ctx context.Context) (domain.RowBatch, error)
}

// Kind identifies the storage behind a data source string.
type Kind string

// Supported source kinds.
const (
	KindCSV      Kind = "csv"
	KindXLSX     Kind = "xlsx"
	KindYAML     Kind = "yaml"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// DetectKind classifies a data source string by URL scheme or file extension.
func DetectKind(dataSource string) (Kind, error) {
	ds := strings.TrimSpace(dataSource)
	if u, err := url.Parse(ds); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "postgres", "postgresql":
			return KindPostgres, nil
		case "sqlite", "file":
			return KindSQLite, nil
		}
	}
	switch strings.ToLower(filepath.Ext(ds)) {
	case ".csv":
		return KindCSV, nil
	case ".xlsx":
		return KindXLSX, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	}
	return "", fmt.Errorf("repo.DetectKind: %w: unsupported data source %q", domain.ErrLoad, dataSource)
}

// Open returns a RowSource for dataSource and a function that releases any
// resources it holds. Database sources are connected and pinged here so a
// bad DSN fails at startup rather than on the first load.
func Open(ctx context.Context, dataSource string) (RowSource, func(), error) {
	kind, err := DetectKind(dataSource)
	if err != nil {
		return nil, nil, err
	}
	noop := func() {}
	switch kind {
	case KindCSV:
		return NewCSVSource(dataSource), noop, nil
	case KindXLSX:
		return NewXLSXSource(dataSource, ""), noop, nil
	case KindYAML:
		return NewYAMLSource(dataSource), noop, nil
	}

	store, err := OpenStore(ctx, dataSource)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
