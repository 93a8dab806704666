package entity

// SidecarSuffix is appended to a processed dataset's filename to name its
// metadata sidecar.
const SidecarSuffix = ".schema.json"

// Sidecar is the JSON metadata document written alongside every processed
// dataset in the same pipeline run.
//
// Invariant: columns, dtypes, and row_count always describe the dataset file
// it sits next to, because both are produced from the same in-memory table.
type Sidecar struct {
	Columns  []string          `json:"columns"`
	Dtypes   map[string]string `json:"dtypes"`
	RowCount int               `json:"row_count"`
}

// SidecarPath returns the sidecar filename for a processed dataset path.
func SidecarPath(datasetPath string) string {
	return datasetPath + SidecarSuffix
}
