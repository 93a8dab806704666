package entity

import "time"

// DatasetRef identifies one processed dataset on disk at a point in time.
//
// The current dataset is recomputed from directory state on every request,
// so the reference carries the modification time that won the recency
// comparison rather than relying on implicit global state.
type DatasetRef struct {
	Path    string
	ModTime time.Time
}
