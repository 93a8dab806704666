package usecase

import (
	"errors"
	"fmt"
)

const (
	// DefaultPageSize is used when the caller does not specify one.
	DefaultPageSize = 100
	// MaxPageSize bounds how many rows a single page may carry.
	MaxPageSize = 1000
	// SampleSize is how many leading rows a summary includes.
	SampleSize = 10
)

// ListParams selects one page of the current dataset.
type ListParams struct {
	Page     int
	PageSize int
	SortBy   string
	SortDesc bool
}

func (p ListParams) validate() error {
	if p.Page < 1 {
		return errors.New("page must be >= 1")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

// ListResult is one page of rows plus pagination bookkeeping.
type ListResult struct {
	Rows       []map[string]any
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// SummaryResult describes the current dataset with a leading sample.
//
// SourceFilename is a naming-convention guess at the raw file the dataset
// came from; it is not verified against the raw directory.
type SummaryResult struct {
	TotalRows      int
	Columns        []string
	ColumnTypes    map[string]string
	SampleRows     []map[string]any
	SourceFilename string
}

// SchemaResult is the dataset's schema without sample rows.
type SchemaResult struct {
	Columns  []string
	Dtypes   map[string]string
	RowCount int
}
