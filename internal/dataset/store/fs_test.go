package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/entity"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
)

func writeDataset(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()

	tbl, err := table.New(
		table.Column{Name: "id", Type: table.DTypeInt64, Values: []any{int64(1), int64(2)}},
		table.Column{Name: "name", Type: table.DTypeString, Values: []any{"a", "b"}},
	)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := tbl.WriteParquet(path); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return path
}

func TestCurrentPicksMostRecent(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	writeDataset(t, dir, "old.parquet", base)
	newest := writeDataset(t, dir, "new.parquet", base.Add(30*time.Minute))

	ref, ok, err := NewFS(dir).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !ok {
		t.Fatal("expected a current dataset")
	}
	if ref.Path != newest {
		t.Fatalf("expected %s, got %s", newest, ref.Path)
	}
}

func TestCurrentEmptyDirectory(t *testing.T) {
	_, ok, err := NewFS(t.TempDir()).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ok {
		t.Fatal("expected no current dataset")
	}
}

func TestCurrentMissingDirectory(t *testing.T) {
	_, ok, err := NewFS(filepath.Join(t.TempDir(), "nope")).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ok {
		t.Fatal("expected no current dataset for missing directory")
	}
}

func TestCurrentIgnoresNonParquet(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	want := writeDataset(t, dir, "data.parquet", base)

	// Sidecars and strays must not win the recency comparison.
	later := base.Add(time.Hour)
	sidecarPath := filepath.Join(dir, "data.parquet.schema.json")
	if err := os.WriteFile(sidecarPath, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
	if err := os.Chtimes(sidecarPath, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	ref, ok, err := NewFS(dir).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !ok || ref.Path != want {
		t.Fatalf("expected %s, got %#v", want, ref)
	}
}

func TestLoadReordersBySidecar(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "data.parquet", time.Now())

	// Sidecar declares an order that differs from parquet's alphabetical one.
	sidecar := `{"columns":["name","id"],"dtypes":{"name":"string","id":"int64"},"row_count":2}`
	if err := os.WriteFile(entity.SidecarPath(path), []byte(sidecar), 0o600); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	tbl, err := NewFS(dir).Load(context.Background(), entity.DatasetRef{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tbl.Columns(); !reflect.DeepEqual(got, []string{"name", "id"}) {
		t.Fatalf("unexpected column order: %#v", got)
	}
}

func TestLoadToleratesMissingSidecar(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "data.parquet", time.Now())

	tbl, err := NewFS(dir).Load(context.Background(), entity.DatasetRef{Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("unexpected rows: %d", tbl.NumRows())
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFS(dir).Load(context.Background(), entity.DatasetRef{Path: filepath.Join(dir, "gone.parquet")})
	if err == nil {
		t.Fatal("expected load error")
	}
}

func TestListReadsSidecars(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "a.parquet", time.Now())
	writeDataset(t, dir, "b.parquet", time.Now())

	sidecar := `{"columns":["id","name"],"dtypes":{"id":"int64","name":"string"},"row_count":2}`
	if err := os.WriteFile(entity.SidecarPath(path), []byte(sidecar), 0o600); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}

	infos, err := NewFS(dir).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(infos))
	}
	if !infos[0].HasMeta || infos[0].RowCount != 2 {
		t.Fatalf("expected sidecar info for a.parquet: %#v", infos[0])
	}
	if infos[1].HasMeta {
		t.Fatalf("expected no sidecar info for b.parquet: %#v", infos[1])
	}
}
