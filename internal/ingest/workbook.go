package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Structural input errors. These abort a batch outright; anything past this
// point is handled per row.
var (
	ErrEmptyFile     = errors.New("file is empty")
	ErrNoSheets      = errors.New("workbook has no sheets")
	ErrNoRows        = errors.New("workbook has no data rows")
	ErrMalformedFile = errors.New("file is not parseable")
)

// OpenWorkbook reads the first sheet of an xlsx payload into rows of string
// cells.
func OpenWorkbook(data []byte) ([][]string, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// ReadCSV reads a comma-separated payload into rows of string cells. A UTF-8
// BOM is tolerated; ragged rows are allowed (the header mapper treats missing
// cells as empty).
func ReadCSV(data []byte) ([][]string, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// IsWorkbookFilename reports whether the filename points at an xlsx payload
// rather than CSV.
func IsWorkbookFilename(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}
