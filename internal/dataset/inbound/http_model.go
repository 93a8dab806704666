package inbound

// DataResponse is one page of dataset rows.
type DataResponse struct {
	Data       []map[string]any `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// SummaryResponse describes the current dataset with a leading sample.
type SummaryResponse struct {
	TotalRows      int               `json:"total_rows"`
	Columns        []string          `json:"columns"`
	ColumnTypes    map[string]string `json:"column_types"`
	SampleData     []map[string]any  `json:"sample_data"`
	SourceFilename string            `json:"source_filename"`
}

// SchemaResponse is the current dataset's schema.
type SchemaResponse struct {
	Columns  []string          `json:"columns"`
	Dtypes   map[string]string `json:"dtypes"`
	RowCount int               `json:"row_count"`
}
