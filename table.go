package linmod

import (
	"fmt"
	"math"
)

// ColumnKind distinguishes numeric columns from categorical ones.
type ColumnKind int

const (
	// NumericColumn holds float64 observations.
	NumericColumn ColumnKind = iota
	// CategoricalColumn holds string labels that are dummy-coded when the
	// column enters a design matrix.
	CategoricalColumn
)

// Column is a single named column of an observation table. Exactly one of
// Floats and Labels is populated, according to Kind.
type Column struct {
	Name   string
	Kind   ColumnKind
	Floats []float64
	Labels []string
}

func (c *Column) len() int {
	if c.Kind == NumericColumn {
		return len(c.Floats)
	}
	return len(c.Labels)
}

// Table is an ordered collection of equal-length columns. Every row is one
// observation. A Table is the cleaned, rectangular input expected by
// DesignMatrix; use DropMissing and Filter to get there.
type Table struct {
	cols    []Column
	numRows int
}

// NewTable initializes an empty observation table.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) checkAdd(name string, n int) error {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
	}
	if len(t.cols) > 0 && n != t.numRows {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", ErrDimensionMismatch, name, n, t.numRows)
	}
	return nil
}

// AddNumeric appends a numeric column. Every column of a table must have
// the same length.
func (t *Table) AddNumeric(name string, vals []float64) error {
	if err := t.checkAdd(name, len(vals)); err != nil {
		return err
	}
	t.cols = append(t.cols, Column{Name: name, Kind: NumericColumn, Floats: append([]float64(nil), vals...)})
	t.numRows = len(vals)
	return nil
}

// AddCategorical appends a categorical column of string labels.
func (t *Table) AddCategorical(name string, labels []string) error {
	if err := t.checkAdd(name, len(labels)); err != nil {
		return err
	}
	t.cols = append(t.cols, Column{Name: name, Kind: CategoricalColumn, Labels: append([]string(nil), labels...)})
	t.numRows = len(labels)
	return nil
}

// NumRows returns the number of observations.
func (t *Table) NumRows() int {
	return t.numRows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, error) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Numeric returns a copy of the values of a numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind != NumericColumn {
		return nil, fmt.Errorf("%w: %q is categorical", ErrColumnType, name)
	}
	return append([]float64(nil), col.Floats...), nil
}

// Select returns a new table holding the given rows, in the given order.
// Row indexes may repeat, which makes Select usable for resampling.
func (t *Table) Select(rows []int) *Table {
	sub := &Table{cols: make([]Column, len(t.cols)), numRows: len(rows)}
	for i := range t.cols {
		src := &t.cols[i]
		dst := Column{Name: src.Name, Kind: src.Kind}
		if src.Kind == NumericColumn {
			dst.Floats = make([]float64, len(rows))
			for j, r := range rows {
				dst.Floats[j] = src.Floats[r]
			}
		} else {
			dst.Labels = make([]string, len(rows))
			for j, r := range rows {
				dst.Labels[j] = src.Labels[r]
			}
		}
		sub.cols[i] = dst
	}
	return sub
}

// Filter returns a new table holding only the rows for which keep is true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	rows := make([]int, 0, t.numRows)
	for i := 0; i < t.numRows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.Select(rows)
}

// DropMissing returns a new table without the rows that have a missing
// value in any column. NaN marks a missing numeric value; the empty string
// marks a missing label.
func (t *Table) DropMissing() *Table {
	return t.Filter(func(row int) bool {
		for i := range t.cols {
			col := &t.cols[i]
			if col.Kind == NumericColumn {
				if math.IsNaN(col.Floats[row]) {
					return false
				}
			} else if col.Labels[row] == "" {
				return false
			}
		}
		return true
	})
}
