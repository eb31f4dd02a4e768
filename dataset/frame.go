package dataset

import (
	"errors"
	"fmt"
	"math"
)

// Column is a named numeric column. Values may contain NaN for missing
// cells until ImputeMedians runs.
type Column struct {
	Name   string
	Values []float64
}

// Frame is an ordered set of equal-length numeric columns. Column order is
// significant: it defines feature index.
type Frame struct {
	columns []Column
	rows    int
}

func NewFrame(columns []Column) (*Frame, error) {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	copied := make([]Column, len(columns))
	for i, col := range columns {
		if len(col.Values) != rows {
			return nil, fmt.Errorf("column %s has %d rows, expected %d", col.Name, len(col.Values), rows)
		}
		values := make([]float64, len(col.Values))
		copy(values, col.Values)
		copied[i] = Column{Name: col.Name, Values: values}
	}
	return &Frame{columns: copied, rows: rows}, nil
}

func (f *Frame) NumRows() int {
	return f.rows
}

func (f *Frame) NumCols() int {
	return len(f.columns)
}

func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// ColumnValues returns a deep copy of all columns in order. Callers may
// overwrite the copy freely.
func (f *Frame) ColumnValues() [][]float64 {
	cols := make([][]float64, len(f.columns))
	for i, col := range f.columns {
		values := make([]float64, len(col.Values))
		copy(values, col.Values)
		cols[i] = values
	}
	return cols
}

// Row assembles one row vector in column order.
func (f *Frame) Row(i int) []float64 {
	row := make([]float64, len(f.columns))
	for j, col := range f.columns {
		row[j] = col.Values[i]
	}
	return row
}

// Means returns the arithmetic mean of each column. NaN cells are excluded;
// an all-NaN column yields a mean of 0.
func (f *Frame) Means() []float64 {
	means := make([]float64, len(f.columns))
	for i, col := range f.columns {
		sum := 0.0
		count := 0
		for _, v := range col.Values {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
		if count > 0 {
			means[i] = sum / float64(count)
		}
	}
	return means
}

// Select returns a new frame containing only the named columns, in the
// given order.
func (f *Frame) Select(names []string) (*Frame, error) {
	byName := make(map[string]Column, len(f.columns))
	for _, col := range f.columns {
		byName[col.Name] = col
	}
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		col, ok := byName[name]
		if !ok {
			return nil, errors.New("column not found: " + name)
		}
		columns = append(columns, col)
	}
	return NewFrame(columns)
}

// Rows builds the row-major view used by the trainers.
func (f *Frame) Rows() [][]float64 {
	rows := make([][]float64, f.rows)
	for i := 0; i < f.rows; i++ {
		rows[i] = f.Row(i)
	}
	return rows
}
