// Package frame implements a small column-named table used to reshape the
// raw statistical datasets: wide-to-long melting, compound column splitting,
// filtering and left joins. It is deliberately minimal, string cells with an
// explicit null, nothing clever.
package frame

import (
	"strings"

	"github.com/pkg/errors"
)

type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

func New(columns []string) *Frame {
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
		index[cols[i]] = i
	}

	return &Frame{columns: cols, index: index}
}

func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *Frame) Len() int {
	return len(f.rows)
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Append adds one row, the cell count must match the column count.
func (f *Frame) Append(cells ...Value) error {
	if len(cells) != len(f.columns) {
		return errors.Errorf("expected %d cells, got %d", len(f.columns), len(cells))
	}

	f.rows = append(f.rows, append([]Value(nil), cells...))
	return nil
}

// Row is a read-only view over a single frame row.
type Row struct {
	f   *Frame
	idx int
}

func (f *Frame) Row(i int) Row {
	return Row{f: f, idx: i}
}

// Get returns the cell in the named column; unknown columns read as null.
func (r Row) Get(column string) Value {
	i, ok := r.f.index[column]
	if !ok {
		return Null()
	}
	return r.f.rows[r.idx][i]
}

// Str is a convenience accessor for string predicates.
func (r Row) Str(column string) string {
	return r.Get(column).Str()
}

// Cell returns the value at the given row in the named column.
func (f *Frame) Cell(row int, column string) (Value, error) {
	i, ok := f.index[column]
	if !ok {
		return Value{}, errors.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(f.rows) {
		return Value{}, errors.Errorf("row %d out of range", row)
	}

	return f.rows[row][i], nil
}

// SplitColumn replaces the named column with len(into) new columns obtained
// by splitting each cell on sep. The new columns are prepended, the
// remaining columns keep their order. A cell that does not split into
// exactly len(into) parts is an error rather than a silent misalignment.
func (f *Frame) SplitColumn(column, sep string, into []string) (*Frame, error) {
	src, ok := f.index[column]
	if !ok {
		return nil, errors.Errorf("unknown column %q", column)
	}

	rest := make([]int, 0, len(f.columns)-1)
	cols := append([]string(nil), into...)
	for i, c := range f.columns {
		if i == src {
			continue
		}
		rest = append(rest, i)
		cols = append(cols, c)
	}

	out := New(cols)
	for n, row := range f.rows {
		parts := strings.Split(row[src].Raw, sep)
		if len(parts) != len(into) {
			return nil, errors.Errorf("row %d: column %q splits into %d parts, expected %d", n, column, len(parts), len(into))
		}

		cells := make([]Value, 0, len(cols))
		for _, p := range parts {
			cells = append(cells, String(strings.TrimSpace(p)))
		}
		for _, i := range rest {
			cells = append(cells, row[i])
		}

		if err := out.Append(cells...); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Melt unpivots the frame: every column not named in idVars becomes one
// output row carrying the column name under varName and the cell under
// valueName.
func (f *Frame) Melt(idVars []string, varName, valueName string) (*Frame, error) {
	ids := make([]int, 0, len(idVars))
	for _, c := range idVars {
		i, ok := f.index[c]
		if !ok {
			return nil, errors.Errorf("unknown id column %q", c)
		}
		ids = append(ids, i)
	}

	isID := make(map[int]bool, len(ids))
	for _, i := range ids {
		isID[i] = true
	}

	out := New(append(append([]string(nil), idVars...), varName, valueName))
	for _, row := range f.rows {
		for i, col := range f.columns {
			if isID[i] {
				continue
			}

			cells := make([]Value, 0, len(idVars)+2)
			for _, id := range ids {
				cells = append(cells, row[id])
			}
			cells = append(cells, String(col), row[i])

			if err := out.Append(cells...); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Filter returns a new frame containing the rows for which pred is true.
func (f *Frame) Filter(pred func(Row) bool) *Frame {
	out := New(f.columns)
	for i := range f.rows {
		if pred(f.Row(i)) {
			out.rows = append(out.rows, f.rows[i])
		}
	}

	return out
}

// LeftJoin matches leftOn cells against rightOn cells and appends the
// remaining right columns. Left rows without a match are kept with null
// cells; multiple right matches duplicate the left row.
func (f *Frame) LeftJoin(right *Frame, leftOn, rightOn string) (*Frame, error) {
	li, ok := f.index[leftOn]
	if !ok {
		return nil, errors.Errorf("unknown left column %q", leftOn)
	}
	ri, ok := right.index[rightOn]
	if !ok {
		return nil, errors.Errorf("unknown right column %q", rightOn)
	}

	extra := make([]int, 0, len(right.columns)-1)
	cols := append([]string(nil), f.columns...)
	for i, c := range right.columns {
		if i == ri {
			continue
		}
		extra = append(extra, i)
		cols = append(cols, c)
	}

	matches := make(map[string][]int, len(right.rows))
	for i, row := range right.rows {
		if row[ri].Null {
			continue
		}
		key := row[ri].Str()
		matches[key] = append(matches[key], i)
	}

	out := New(cols)
	for _, row := range f.rows {
		hits := matches[row[li].Str()]
		if row[li].Null || len(hits) == 0 {
			cells := append([]Value(nil), row...)
			for range extra {
				cells = append(cells, Null())
			}
			if err := out.Append(cells...); err != nil {
				return nil, err
			}
			continue
		}

		for _, hit := range hits {
			cells := append([]Value(nil), row...)
			for _, i := range extra {
				cells = append(cells, right.rows[hit][i])
			}
			if err := out.Append(cells...); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Rename changes a column name in place.
func (f *Frame) Rename(from, to string) error {
	i, ok := f.index[from]
	if !ok {
		return errors.Errorf("unknown column %q", from)
	}
	if _, exists := f.index[to]; exists && to != from {
		return errors.Errorf("column %q already exists", to)
	}

	f.columns[i] = to
	delete(f.index, from)
	f.index[to] = i
	return nil
}
