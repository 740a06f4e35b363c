package repo

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/pkordes/dining-scout/internal/domain"
)

// utf8BOM is stripped from the first header cell; spreadsheet exports add it.
const utf8BOM = "\ufeff"

// NewCSVSource returns a RowSource reading the CSV file at path.
func NewCSVSource(path string) RowSource {
	return &fileSource{op: "repo.CSVSource.Rows", path: path, parse: ParseCSV}
}

// ParseCSV reads a header row followed by data rows.
// Records whose field count differs from the header, or that fail to parse
// (e.g. a stray quote), are skipped and counted. A stream with no header
// row is an error.
func ParseCSV(r io.Reader) (domain.RowBatch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // fixed by the header row

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.RowBatch{}, errors.New("csv: missing header row")
	}
	if err != nil {
		return domain.RowBatch{}, err
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var batch domain.RowBatch
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			batch.Skipped++
			continue
		}
		if err != nil {
			return domain.RowBatch{}, err
		}
		batch.Rows = append(batch.Rows, zipRow(header, rec))
	}
	return batch, nil
}

// zipRow pairs header names with cell values. Empty cells become nil.
func zipRow(header, cells []string) domain.RawRow {
	row := make(domain.RawRow, len(header))
	for i, name := range header {
		if i >= len(cells) || cells[i] == "" {
			row[name] = nil
			continue
		}
		row[name] = cells[i]
	}
	return row
}
