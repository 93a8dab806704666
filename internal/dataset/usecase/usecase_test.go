package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/entity"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgerror"
)

type stubStore struct {
	ref     entity.DatasetRef
	ok      bool
	tbl     *table.Table
	curErr  error
	loadErr error
}

func (s *stubStore) Current(ctx context.Context) (entity.DatasetRef, bool, error) {
	return s.ref, s.ok, s.curErr
}

func (s *stubStore) Load(ctx context.Context, ref entity.DatasetRef) (*table.Table, error) {
	return s.tbl, s.loadErr
}

func numberedTable(t *testing.T, n int) *table.Table {
	t.Helper()

	ids := make([]any, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	tbl, err := table.New(table.Column{Name: "id", Type: table.DTypeInt64, Values: ids})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tbl
}

func newTestUsecase(t *testing.T, rows int) *Usecase {
	t.Helper()
	return New(Dependency{Store: &stubStore{
		ref: entity.DatasetRef{Path: "/data/processed/scores.parquet", ModTime: time.Now()},
		ok:  true,
		tbl: numberedTable(t, rows),
	}})
}

func TestListPaginates(t *testing.T) {
	uc := newTestUsecase(t, 25)

	res, err := uc.List(context.Background(), ListParams{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 25 || res.TotalPages != 3 {
		t.Fatalf("unexpected totals: %#v", res)
	}
	if len(res.Rows) != 5 {
		t.Fatalf("expected 5 rows on the last page, got %d", len(res.Rows))
	}
	if res.Rows[0]["id"] != int64(21) {
		t.Fatalf("unexpected first row: %#v", res.Rows[0])
	}
}

func TestListPagePastEnd(t *testing.T) {
	uc := newTestUsecase(t, 25)

	res, err := uc.List(context.Background(), ListParams{Page: 5, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Rows) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(res.Rows))
	}
	if res.Total != 25 {
		t.Fatalf("unexpected total: %d", res.Total)
	}
}

func TestListSorts(t *testing.T) {
	uc := newTestUsecase(t, 3)

	res, err := uc.List(context.Background(), ListParams{Page: 1, PageSize: 10, SortBy: "id", SortDesc: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Rows[0]["id"] != int64(3) {
		t.Fatalf("expected descending order, got %#v", res.Rows)
	}
}

func TestListUnknownSortColumnIgnored(t *testing.T) {
	uc := newTestUsecase(t, 3)

	res, err := uc.List(context.Background(), ListParams{Page: 1, PageSize: 10, SortBy: "missing"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Rows[0]["id"] != int64(1) {
		t.Fatalf("expected original order, got %#v", res.Rows)
	}
}

func TestListValidation(t *testing.T) {
	uc := newTestUsecase(t, 3)

	cases := []ListParams{
		{Page: 0, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: MaxPageSize + 1},
	}
	for _, params := range cases {
		_, err := uc.List(context.Background(), params)
		var perr *pkgerror.Error
		if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeInvalidInput {
			t.Fatalf("params %#v: expected invalid input, got %v", params, err)
		}
	}
}

func TestListNoDataset(t *testing.T) {
	uc := New(Dependency{Store: &stubStore{}})

	_, err := uc.List(context.Background(), ListParams{Page: 1, PageSize: 10})
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListLoadFailure(t *testing.T) {
	uc := New(Dependency{Store: &stubStore{
		ok:      true,
		loadErr: errors.New("corrupt file"),
	}})

	_, err := uc.List(context.Background(), ListParams{Page: 1, PageSize: 10})
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Type() != pkgerror.TypeServer {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	uc := newTestUsecase(t, 25)

	res, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if res.TotalRows != 25 {
		t.Fatalf("unexpected total rows: %d", res.TotalRows)
	}
	if len(res.SampleRows) != SampleSize {
		t.Fatalf("expected %d sample rows, got %d", SampleSize, len(res.SampleRows))
	}
	if res.ColumnTypes["id"] != "int64" {
		t.Fatalf("unexpected column types: %#v", res.ColumnTypes)
	}
	if res.SourceFilename != "scores.csv" {
		t.Fatalf("unexpected source filename: %q", res.SourceFilename)
	}
}

func TestSummarySampleShorterThanDataset(t *testing.T) {
	uc := newTestUsecase(t, 3)

	res, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(res.SampleRows) != 3 {
		t.Fatalf("expected 3 sample rows, got %d", len(res.SampleRows))
	}
}

func TestSchema(t *testing.T) {
	uc := newTestUsecase(t, 25)

	res, err := uc.Schema(context.Background())
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if res.RowCount != 25 {
		t.Fatalf("unexpected row count: %d", res.RowCount)
	}
	if len(res.Columns) != 1 || res.Columns[0] != "id" {
		t.Fatalf("unexpected columns: %#v", res.Columns)
	}
}
