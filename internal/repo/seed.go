package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/normalize"
)

// Seed reads src, normalizes the rows, migrates store and replaces its
// contents with the normalized venues. Rows that fail normalization are not
// written; the returned stats say how many.
func Seed(ctx context.Context, src RowSource, store *Store) (domain.LoadStats, error) {
	batch, err := src.Rows(ctx)
	if err != nil {
		return domain.LoadStats{}, fmt.Errorf("repo.Seed: %w", err)
	}
	res := normalize.Rows(batch.Rows)

	if err := store.Migrate(ctx); err != nil {
		return domain.LoadStats{}, fmt.Errorf("repo.Seed: %w", err)
	}
	n, err := store.Replace(ctx, normalize.ToRows(res.Venues))
	if err != nil {
		return domain.LoadStats{}, fmt.Errorf("repo.Seed: %w", err)
	}
	return domain.LoadStats{
		Rows:             len(batch.Rows),
		Venues:           n,
		SkippedMalformed: batch.Skipped,
		DroppedNameless:  res.Dropped,
	}, nil
}
