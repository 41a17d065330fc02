package linmod

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Term describes one model term of a design matrix. The concrete types are
// Intercept, Numeric, Categorical and Interaction; they replace a string
// formula mini-language with explicit, ordered descriptors.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Intercept is the constant term, materialized as a column of ones.
type Intercept struct{}

func (Intercept) isTerm() {}

func (Intercept) String() string { return "(Intercept)" }

// Numeric is a single numeric predictor column, used as-is.
type Numeric struct {
	Col string
}

func (Numeric) isTerm() {}

func (t Numeric) String() string { return t.Col }

// Categorical is a dummy-coded categorical predictor. A column with k
// levels contributes k-1 indicator columns, one per non-reference level.
// An empty Reference selects the first level encountered in row order,
// which keeps the coding deterministic across runs on the same data.
type Categorical struct {
	Col       string
	Reference string
}

func (Categorical) isTerm() {}

func (t Categorical) String() string { return t.Col }

// Interaction is the elementwise product of two or more terms. A
// categorical subterm participates with each of its non-reference dummy
// columns separately, so a numeric-by-categorical(k) interaction yields
// k-1 product columns.
type Interaction struct {
	Terms []Term
}

func (Interaction) isTerm() {}

func (t Interaction) String() string {
	parts := make([]string, len(t.Terms))
	for i, sub := range t.Terms {
		parts[i] = sub.String()
	}
	return strings.Join(parts, ":")
}

// Design is a bound design-matrix layout: an ordered term list together
// with the categorical level order observed when the design was first
// built. Encoding another table through the same Design is guaranteed to
// produce the identical column structure, which is what Predict requires.
type Design struct {
	terms  []Term
	labels []string
	levels map[string][]string // level order per categorical column, reference first
	x      *mat.Dense
}

// DesignMatrix builds the design matrix of tbl for the given term list.
// Columns appear in term order; categorical reference levels are bound on
// this first encoding and reused by Encode.
func DesignMatrix(tbl *Table, terms []Term) (*Design, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}
	d := &Design{
		terms:  terms,
		levels: map[string][]string{},
	}
	cols, err := d.encode(tbl)
	if err != nil {
		return nil, err
	}
	d.labels = make([]string, len(cols))
	for i, c := range cols {
		d.labels[i] = c.label
	}
	d.x = columnsToDense(tbl.NumRows(), cols)
	return d, nil
}

// X returns the design matrix of the table the design was built from.
func (d *Design) X() *mat.Dense {
	return d.x
}

// Labels returns the column labels, parallel to the matrix columns.
func (d *Design) Labels() []string {
	return append([]string(nil), d.labels...)
}

// Terms returns the term list the design was built from.
func (d *Design) Terms() []Term {
	return append([]Term(nil), d.terms...)
}

// Encode materializes the design matrix of another table using the bound
// layout. A categorical value that was not present when the design was
// built yields ErrUnknownLevel.
func (d *Design) Encode(tbl *Table) (*mat.Dense, error) {
	cols, err := d.encode(tbl)
	if err != nil {
		return nil, err
	}
	return columnsToDense(tbl.NumRows(), cols), nil
}

type encodedColumn struct {
	label string
	data  []float64
}

func columnsToDense(numRows int, cols []encodedColumn) *mat.Dense {
	x := mat.NewDense(numRows, len(cols), nil)
	for j, c := range cols {
		x.SetCol(j, c.data)
	}
	return x
}

func (d *Design) encode(tbl *Table) ([]encodedColumn, error) {
	var cols []encodedColumn
	for _, term := range d.terms {
		expanded, err := d.expandTerm(tbl, term, false)
		if err != nil {
			return nil, err
		}
		cols = append(cols, expanded...)
	}
	return cols, nil
}

func (d *Design) expandTerm(tbl *Table, term Term, nested bool) ([]encodedColumn, error) {
	switch t := term.(type) {
	case Intercept:
		if nested {
			return nil, fmt.Errorf("%w: intercept cannot appear inside an interaction", ErrInvalidTerm)
		}
		ones := make([]float64, tbl.NumRows())
		for i := range ones {
			ones[i] = 1
		}
		return []encodedColumn{{label: t.String(), data: ones}}, nil

	case Numeric:
		vals, err := tbl.Numeric(t.Col)
		if err != nil {
			return nil, err
		}
		return []encodedColumn{{label: t.Col, data: vals}}, nil

	case Categorical:
		return d.expandCategorical(tbl, t)

	case Interaction:
		if len(t.Terms) < 2 {
			return nil, fmt.Errorf("%w: interaction needs at least two terms", ErrInvalidTerm)
		}
		var acc []encodedColumn
		for _, sub := range t.Terms {
			expanded, err := d.expandTerm(tbl, sub, true)
			if err != nil {
				return nil, err
			}
			if acc == nil {
				acc = expanded
				continue
			}
			product := make([]encodedColumn, 0, len(acc)*len(expanded))
			for _, a := range acc {
				for _, b := range expanded {
					data := make([]float64, len(a.data))
					for i := range data {
						data[i] = a.data[i] * b.data[i]
					}
					product = append(product, encodedColumn{label: a.label + ":" + b.label, data: data})
				}
			}
			acc = product
		}
		return acc, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidTerm, term)
	}
}

func (d *Design) expandCategorical(tbl *Table, t Categorical) ([]encodedColumn, error) {
	col, err := tbl.Column(t.Col)
	if err != nil {
		return nil, err
	}
	if col.Kind != CategoricalColumn {
		return nil, fmt.Errorf("%w: %q is numeric", ErrColumnType, t.Col)
	}

	levels, bound := d.levels[t.Col]
	if !bound {
		levels, err = scanLevels(col, t.Reference)
		if err != nil {
			return nil, err
		}
		d.levels[t.Col] = levels
	}

	index := make(map[string]int, len(levels))
	for i, lv := range levels {
		index[lv] = i
	}

	// One indicator column per non-reference level, in bound order.
	cols := make([]encodedColumn, len(levels)-1)
	for i := range cols {
		cols[i] = encodedColumn{
			label: t.Col + "=" + levels[i+1],
			data:  make([]float64, col.len()),
		}
	}
	for row, label := range col.Labels {
		i, ok := index[label]
		if !ok {
			return nil, fmt.Errorf("%w: %q in column %q", ErrUnknownLevel, label, t.Col)
		}
		if i > 0 {
			cols[i-1].data[row] = 1
		}
	}
	return cols, nil
}

// scanLevels collects the distinct labels of col in first-seen row order.
// When reference is non-empty it is moved to the front.
func scanLevels(col *Column, reference string) ([]string, error) {
	seen := make(map[string]struct{})
	var levels []string
	for _, label := range col.Labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		levels = append(levels, label)
	}
	if len(levels) < 2 {
		return nil, fmt.Errorf("%w: column %q has fewer than two levels", ErrInvalidTerm, col.Name)
	}
	if reference == "" {
		return levels, nil
	}
	if _, ok := seen[reference]; !ok {
		return nil, fmt.Errorf("%w: reference %q in column %q", ErrUnknownLevel, reference, col.Name)
	}
	ordered := make([]string, 0, len(levels))
	ordered = append(ordered, reference)
	for _, lv := range levels {
		if lv != reference {
			ordered = append(ordered, lv)
		}
	}
	return ordered, nil
}
