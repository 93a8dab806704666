// Package table implements the column-typed in-memory table the pipeline and
// the query service operate on. Values are stored per column; a nil value is
// a null.
package table

import (
	"fmt"
	"sort"
)

// Column is a named, typed sequence of values. A nil entry is a null.
type Column struct {
	Name   string
	Type   DType
	Values []any
}

// Table is an ordered set of equally sized columns.
type Table struct {
	cols []Column
	rows int
}

// New builds a Table from columns, enforcing unique names and uniform length.
func New(cols ...Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].Values)
	}

	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name: %q", c.Name)
		}
		seen[c.Name] = struct{}{}

		if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d values, expected %d", c.Name, len(c.Values), rows)
		}
	}

	return &Table{cols: cols, rows: rows}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// DTypes returns the column name to dtype-name mapping.
func (t *Table) DTypes() map[string]string {
	dtypes := make(map[string]string, len(t.cols))
	for _, c := range t.cols {
		dtypes[c.Name] = c.Type.String()
	}
	return dtypes
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Row returns row i as a column-name to value mapping.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.cols))
	for _, c := range t.cols {
		row[c.Name] = c.Values[i]
	}
	return row
}

// Rows returns every row as a mapping, in order.
func (t *Table) Rows() []map[string]any {
	rows := make([]map[string]any, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}

// Head returns the first n rows (or fewer if the table is smaller).
func (t *Table) Head(n int) []map[string]any {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}

// Slice returns a new table holding rows [offset, offset+limit), clamped to
// the table bounds. An offset past the end yields an empty table.
func (t *Table) Slice(offset, limit int) *Table {
	if offset < 0 {
		offset = 0
	}
	if offset > t.rows {
		offset = t.rows
	}
	end := offset + limit
	if limit < 0 || end > t.rows {
		end = t.rows
	}

	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = Column{
			Name:   c.Name,
			Type:   c.Type,
			Values: append([]any(nil), c.Values[offset:end]...),
		}
	}
	return &Table{cols: cols, rows: end - offset}
}

// SortBy returns a new table sorted by the named column. The sort is stable;
// direction per desc; nulls order before every value ascending (after every
// value descending). A name that matches no column returns the table
// unchanged.
func (t *Table) SortBy(name string, desc bool) *Table {
	col, ok := t.Column(name)
	if !ok {
		return t
	}

	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		if desc {
			return lessValue(col.Values[idx[b]], col.Values[idx[a]], col.Type)
		}
		return lessValue(col.Values[idx[a]], col.Values[idx[b]], col.Type)
	})

	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		values := make([]any, t.rows)
		for j, src := range idx {
			values[j] = c.Values[src]
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Table{cols: cols, rows: t.rows}
}

func lessValue(a, b any, dt DType) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}

	switch dt {
	case DTypeInt64:
		return a.(int64) < b.(int64)
	case DTypeFloat64:
		return a.(float64) < b.(float64)
	case DTypeBool:
		return !a.(bool) && b.(bool)
	default:
		return a.(string) < b.(string)
	}
}

// DropAllNullRows returns a new table without the rows whose every value is
// null. Rows with at least one non-null value are kept unchanged.
func (t *Table) DropAllNullRows() *Table {
	keep := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		allNull := true
		for _, c := range t.cols {
			if c.Values[i] != nil {
				allNull = false
				break
			}
		}
		if !allNull {
			keep = append(keep, i)
		}
	}

	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		values := make([]any, 0, len(keep))
		for _, src := range keep {
			values = append(values, c.Values[src])
		}
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: values}
	}
	return &Table{cols: cols, rows: len(keep)}
}

// Cast coerces the named column's values to the target dtype in place.
func (t *Table) Cast(name string, to DType) error {
	col, ok := t.Column(name)
	if !ok {
		return fmt.Errorf("no such column: %q", name)
	}
	if col.Type == to {
		return nil
	}

	values := make([]any, len(col.Values))
	for i, v := range col.Values {
		cast, err := castValue(v, to)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		values[i] = cast
	}

	col.Type = to
	col.Values = values
	return nil
}

// Reorder rearranges the columns to the given name order. Every table column
// must appear in names exactly once.
func (t *Table) Reorder(names []string) error {
	if len(names) != len(t.cols) {
		return fmt.Errorf("reorder expects %d names, got %d", len(t.cols), len(names))
	}

	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("no such column: %q", name)
		}
		cols = append(cols, *col)
	}

	t.cols = cols
	return nil
}
