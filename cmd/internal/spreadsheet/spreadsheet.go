package spreadsheet

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheet = errors.New("spreadsheet has no sheets")

// Row is one spreadsheet line keyed by the header of each column. Column
// names are kept exactly as written in the file; lookups are case-sensitive
// with no fuzzy matching.
type Row map[string]string

// Get returns the trimmed cell under the given header.
func (r Row) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// First returns the first non-empty cell among alternative headers for the
// same logical column (import files disagree on names like "VALOR 20L" vs "20L").
func (r Row) First(keys ...string) string {
	for _, key := range keys {
		if v := r.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// Read loads the first sheet of an XLSX stream into header-keyed rows.
func Read(src io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return MapRows(cells), nil
}

// MapRows converts a raw cell grid into Rows using the first line as headers.
// Lines that are entirely empty are dropped; trailing cells beyond the header
// width are ignored, matching how the sheets are actually edited by hand.
func MapRows(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}

	headers := cells[0]
	rows := make([]Row, 0, len(cells)-1)

	for _, line := range cells[1:] {
		row := make(Row, len(headers))
		empty := true

		for i, header := range headers {
			header = strings.TrimSpace(header)
			if header == "" || i >= len(line) {
				continue
			}
			row[header] = line[i]
			if strings.TrimSpace(line[i]) != "" {
				empty = false
			}
		}

		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
