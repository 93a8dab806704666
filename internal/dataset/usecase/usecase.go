// Package usecase implements the read operations over the current processed
// dataset: paginated listing, summary, and schema.
//
// Every call re-resolves the current dataset from directory state and
// re-loads it from disk; there is no cache to invalidate.
package usecase

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/entity"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgerror"
)

// Store selects and loads processed datasets.
type Store interface {
	Current(ctx context.Context) (entity.DatasetRef, bool, error)
	Load(ctx context.Context, ref entity.DatasetRef) (*table.Table, error)
}

type Dependency struct {
	Store Store
}

type Usecase struct {
	store Store
}

func New(dep Dependency) *Usecase {
	return &Usecase{store: dep.Store}
}

// List returns one page of the current dataset, sorted first when SortBy
// names an existing column (an unknown name is silently ignored). A page
// past the end of the data yields an empty page, not an error.
func (u *Usecase) List(ctx context.Context, params ListParams) (ListResult, error) {
	if err := params.validate(); err != nil {
		return ListResult{}, pkgerror.NewInvalidInput(err)
	}

	tbl, _, err := u.loadCurrent(ctx)
	if err != nil {
		return ListResult{}, err
	}

	if params.SortBy != "" {
		tbl = tbl.SortBy(params.SortBy, params.SortDesc)
	}

	total := tbl.NumRows()
	totalPages := (total + params.PageSize - 1) / params.PageSize

	page := tbl.Slice((params.Page-1)*params.PageSize, params.PageSize)

	return ListResult{
		Rows:       page.Rows(),
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Summary returns the dataset's shape, its first rows, and the raw filename
// the dataset conventionally derives from.
func (u *Usecase) Summary(ctx context.Context) (SummaryResult, error) {
	tbl, ref, err := u.loadCurrent(ctx)
	if err != nil {
		return SummaryResult{}, err
	}

	return SummaryResult{
		TotalRows:      tbl.NumRows(),
		Columns:        tbl.Columns(),
		ColumnTypes:    tbl.DTypes(),
		SampleRows:     tbl.Head(SampleSize),
		SourceFilename: sourceFilename(ref.Path),
	}, nil
}

// Schema returns the dataset's columns, dtypes, and row count.
func (u *Usecase) Schema(ctx context.Context) (SchemaResult, error) {
	tbl, _, err := u.loadCurrent(ctx)
	if err != nil {
		return SchemaResult{}, err
	}

	return SchemaResult{
		Columns:  tbl.Columns(),
		Dtypes:   tbl.DTypes(),
		RowCount: tbl.NumRows(),
	}, nil
}

func (u *Usecase) loadCurrent(ctx context.Context) (*table.Table, entity.DatasetRef, error) {
	ref, ok, err := u.store.Current(ctx)
	if err != nil {
		return nil, entity.DatasetRef{}, pkgerror.NewServer(err)
	}
	if !ok {
		return nil, entity.DatasetRef{}, pkgerror.NewBusiness(
			"no processed dataset found, run the data pipeline first",
			pkgerror.CodeNotFound,
		)
	}

	tbl, err := u.store.Load(ctx, ref)
	if err != nil {
		return nil, entity.DatasetRef{}, pkgerror.NewServer(err)
	}

	return tbl, ref, nil
}

// sourceFilename swaps the processed extension for the conventional raw one.
// This is a heuristic: the named file may not exist.
func sourceFilename(datasetPath string) string {
	base := filepath.Base(datasetPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
}
