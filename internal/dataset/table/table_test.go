package table

import (
	"reflect"
	"testing"
)

func mustTable(t *testing.T, cols ...Column) *Table {
	t.Helper()
	tbl, err := New(cols...)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tbl
}

func scoresTable(t *testing.T) *Table {
	t.Helper()
	return mustTable(t,
		Column{Name: "id", Type: DTypeInt64, Values: []any{int64(1), int64(2), int64(3), int64(4), int64(5)}},
		Column{Name: "score", Type: DTypeFloat64, Values: []any{2.5, nil, 1.0, 2.5, 0.5}},
		Column{Name: "name", Type: DTypeString, Values: []any{"a", "b", "c", "d", "e"}},
	)
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Type: DTypeInt64, Values: []any{int64(1)}},
		Column{Name: "b", Type: DTypeInt64, Values: []any{int64(1), int64(2)}},
	)
	if err == nil {
		t.Fatal("expected error for ragged columns")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		Column{Name: "a", Type: DTypeInt64, Values: []any{int64(1)}},
		Column{Name: "a", Type: DTypeInt64, Values: []any{int64(2)}},
	)
	if err == nil {
		t.Fatal("expected error for duplicate column names")
	}
}

func TestColumnsAndDTypes(t *testing.T) {
	tbl := scoresTable(t)

	if got := tbl.Columns(); !reflect.DeepEqual(got, []string{"id", "score", "name"}) {
		t.Fatalf("unexpected columns: %#v", got)
	}
	want := map[string]string{"id": "int64", "score": "float64", "name": "string"}
	if got := tbl.DTypes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected dtypes: %#v", got)
	}
}

func TestSortByIsStable(t *testing.T) {
	tbl := scoresTable(t)

	sorted := tbl.SortBy("score", false)

	// Nulls sort first ascending; equal keys (2.5 at ids 1 and 4) keep their
	// original relative order.
	col, _ := sorted.Column("id")
	want := []any{int64(2), int64(5), int64(3), int64(1), int64(4)}
	if !reflect.DeepEqual(col.Values, want) {
		t.Fatalf("unexpected sorted ids: %#v", col.Values)
	}

	// Original table untouched.
	orig, _ := tbl.Column("id")
	if !reflect.DeepEqual(orig.Values, []any{int64(1), int64(2), int64(3), int64(4), int64(5)}) {
		t.Fatalf("sort mutated the source table: %#v", orig.Values)
	}
}

func TestSortByDescending(t *testing.T) {
	tbl := scoresTable(t)

	sorted := tbl.SortBy("score", true)
	col, _ := sorted.Column("id")
	want := []any{int64(1), int64(4), int64(3), int64(5), int64(2)}
	if !reflect.DeepEqual(col.Values, want) {
		t.Fatalf("unexpected sorted ids: %#v", col.Values)
	}
}

func TestSortByUnknownColumnIsNoop(t *testing.T) {
	tbl := scoresTable(t)

	sorted := tbl.SortBy("nope", false)
	if sorted != tbl {
		t.Fatal("expected the same table back for an unknown sort column")
	}
}

func TestSliceClamps(t *testing.T) {
	tbl := scoresTable(t)

	page := tbl.Slice(3, 10)
	if page.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", page.NumRows())
	}

	empty := tbl.Slice(40, 10)
	if empty.NumRows() != 0 {
		t.Fatalf("expected empty slice, got %d rows", empty.NumRows())
	}
	if empty.NumCols() != 3 {
		t.Fatalf("expected columns preserved, got %d", empty.NumCols())
	}
}

func TestDropAllNullRows(t *testing.T) {
	tbl := mustTable(t,
		Column{Name: "id", Type: DTypeInt64, Values: []any{int64(1), int64(2), nil}},
		Column{Name: "score", Type: DTypeInt64, Values: []any{int64(10), nil, nil}},
	)

	cleaned := tbl.DropAllNullRows()
	if cleaned.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", cleaned.NumRows())
	}

	// The partially null row survives unchanged.
	row := cleaned.Row(1)
	if row["id"] != int64(2) || row["score"] != nil {
		t.Fatalf("unexpected second row: %#v", row)
	}
}

func TestCastCoercesValues(t *testing.T) {
	tbl := mustTable(t,
		Column{Name: "v", Type: DTypeString, Values: []any{"1", "2", nil}},
	)

	if err := tbl.Cast("v", DTypeInt64); err != nil {
		t.Fatalf("cast: %v", err)
	}

	col, _ := tbl.Column("v")
	if col.Type != DTypeInt64 {
		t.Fatalf("unexpected dtype: %v", col.Type)
	}
	if !reflect.DeepEqual(col.Values, []any{int64(1), int64(2), nil}) {
		t.Fatalf("unexpected values: %#v", col.Values)
	}
}

func TestCastFailsOnUncoercible(t *testing.T) {
	tbl := mustTable(t,
		Column{Name: "v", Type: DTypeString, Values: []any{"1", "two"}},
	)

	if err := tbl.Cast("v", DTypeInt64); err == nil {
		t.Fatal("expected cast error")
	}
}

func TestReorder(t *testing.T) {
	tbl := scoresTable(t)

	if err := tbl.Reorder([]string{"name", "id", "score"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if got := tbl.Columns(); !reflect.DeepEqual(got, []string{"name", "id", "score"}) {
		t.Fatalf("unexpected order: %#v", got)
	}

	if err := tbl.Reorder([]string{"name", "id"}); err == nil {
		t.Fatal("expected error for wrong name count")
	}
}

func TestHead(t *testing.T) {
	tbl := scoresTable(t)

	if got := len(tbl.Head(3)); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if got := len(tbl.Head(50)); got != 5 {
		t.Fatalf("expected 5 rows, got %d", got)
	}
}
