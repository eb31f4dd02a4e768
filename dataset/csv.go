package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Table holds a parsed CSV as string cells, column-major. Numeric typing is
// decided per column when a Frame is built from it.
type Table struct {
	Headers []string
	cells   [][]string
	rows    int
}

// ParseOptions controls CSV decoding.
type ParseOptions struct {
	// GBK transcodes the input from GBK to UTF-8 before parsing, for
	// uploads exported by legacy spreadsheet tools.
	GBK bool
}

// ParseCSV reads a CSV with a mandatory header row. Ragged rows are
// rejected by the underlying reader.
func ParseCSV(r io.Reader, opts ParseOptions) (*Table, error) {
	if opts.GBK {
		r = transform.NewReader(r, simplifiedchinese.GBK.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, err
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	cells := make([][]string, len(headers))
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range headers {
			cells[i] = append(cells[i], strings.TrimSpace(record[i]))
		}
		rows++
	}
	if rows == 0 {
		return nil, errors.New("csv has no data rows")
	}
	return &Table{Headers: headers, cells: cells, rows: rows}, nil
}

func (t *Table) NumRows() int {
	return t.rows
}

// Column returns the raw string cells for a named column.
func (t *Table) Column(name string) ([]string, bool) {
	for i, h := range t.Headers {
		if h == name {
			out := make([]string, len(t.cells[i]))
			copy(out, t.cells[i])
			return out, true
		}
	}
	return nil, false
}

func parseCell(cell string) (float64, bool) {
	if cell == "" {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericColumn converts one column, reporting false if any non-empty cell
// fails to parse. Empty cells become NaN.
func (t *Table) numericColumn(idx int) ([]float64, bool) {
	values := make([]float64, t.rows)
	for i, cell := range t.cells[idx] {
		v, ok := parseCell(cell)
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

// NumericFrame builds a frame from every fully-numeric column except the
// excluded ones. Column order follows the header order.
func (t *Table) NumericFrame(exclude ...string) (*Frame, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	columns := make([]Column, 0, len(t.Headers))
	for i, h := range t.Headers {
		if skip[h] {
			continue
		}
		values, ok := t.numericColumn(i)
		if !ok {
			continue
		}
		columns = append(columns, Column{Name: h, Values: values})
	}
	return NewFrame(columns)
}

// ColumnProfile describes one column for the dataset listing.
type ColumnProfile struct {
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
	Missing int    `json:"missing"`
}

// Profile summarizes every column.
func (t *Table) Profile() []ColumnProfile {
	profiles := make([]ColumnProfile, len(t.Headers))
	for i, h := range t.Headers {
		missing := 0
		for _, cell := range t.cells[i] {
			if cell == "" {
				missing++
			}
		}
		_, numeric := t.numericColumn(i)
		profiles[i] = ColumnProfile{Name: h, Numeric: numeric, Missing: missing}
	}
	return profiles
}
