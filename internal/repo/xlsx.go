package repo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/dining-scout/internal/domain"
)

// NewXLSXSource returns a RowSource reading the named sheet of the workbook
// at path. An empty sheet name selects the first sheet.
func NewXLSXSource(path, sheet string) RowSource {
	return &fileSource{
		op:   "repo.XLSXSource.Rows",
		path: path,
		parse: func(r io.Reader) (domain.RowBatch, error) {
			return ParseXLSX(r, sheet)
		},
	}
}

// ParseXLSX reads one worksheet. The first row with any non-blank cell is
// the header; fully blank rows are ignored. Rows carrying values in columns
// beyond the header are skipped and counted.
func ParseXLSX(r io.Reader, sheet string) (domain.RowBatch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.RowBatch{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.RowBatch{}, errors.New("xlsx: workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values keep numbers such as coordinates at full precision instead
	// of the cell's display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.RowBatch{}, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}

	var (
		batch  domain.RowBatch
		header []string
	)
	for _, cells := range rows {
		if blankCells(cells) {
			continue
		}
		if header == nil {
			header = cells
			continue
		}
		if !blankCells(cells[min(len(cells), len(header)):]) {
			batch.Skipped++
			continue
		}
		batch.Rows = append(batch.Rows, zipRow(header, cells))
	}
	if header == nil {
		return domain.RowBatch{}, fmt.Errorf("xlsx: sheet %q has no header row", sheet)
	}
	return batch, nil
}

func blankCells(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
