package repo

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkordes/dining-scout/internal/domain"
)

// parseFunc turns the contents of a file into rows.
type parseFunc func(r io.Reader) (domain.RowBatch, error)

// fileSource reads a local file on every load, so a reload picks up edits.
type fileSource struct {
	op    string
	path  string
	parse parseFunc
}

// Rows opens the file and parses it. A missing or unreadable file, or one
// the parser rejects as a whole, is reported as domain.ErrLoad.
func (s *fileSource) Rows(ctx context.Context) (domain.RowBatch, error) {
	if err := ctx.Err(); err != nil {
		return domain.RowBatch{}, fmt.Errorf("%s: %w", s.op, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return domain.RowBatch{}, fmt.Errorf("%s: %w: %w", s.op, domain.ErrLoad, err)
	}
	defer f.Close()

	batch, err := s.parse(f)
	if err != nil {
		return domain.RowBatch{}, fmt.Errorf("%s: %w: %w", s.op, domain.ErrLoad, err)
	}
	return batch, nil
}
