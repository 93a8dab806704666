// Package store reads processed datasets from the filesystem. The pipeline
// owns writes; this side only selects and loads.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/entity"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
)

const datasetExt = ".parquet"

// FS selects and loads processed datasets from a directory.
type FS struct {
	dir string
}

// NewFS returns a store over the given processed-data directory.
func NewFS(dir string) *FS {
	return &FS{dir: dir}
}

// Current returns the most recently modified processed dataset in the
// directory. The second return is false when the directory holds none.
// Equal modification times are broken by whichever file the directory
// listing yields first.
func (s *FS) Current(ctx context.Context) (entity.DatasetRef, bool, error) {
	refs, err := s.refs()
	if err != nil {
		return entity.DatasetRef{}, false, err
	}
	if len(refs) == 0 {
		return entity.DatasetRef{}, false, nil
	}

	current := refs[0]
	for _, ref := range refs[1:] {
		if ref.ModTime.After(current.ModTime) {
			current = ref
		}
	}
	return current, true, nil
}

// Load reads the referenced dataset into memory. When a sidecar with a
// matching column set sits next to the file, columns are reordered to the
// sidecar's order (parquet stores fields sorted by name); a missing or
// mismatched sidecar is tolerated.
func (s *FS) Load(ctx context.Context, ref entity.DatasetRef) (*table.Table, error) {
	tbl, err := table.ReadParquet(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", ref.Path, err)
	}

	if sc, err := readSidecar(ref.Path); err == nil && sameColumns(sc.Columns, tbl.Columns()) {
		if err := tbl.Reorder(sc.Columns); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

// DatasetInfo describes one processed dataset for listings.
type DatasetInfo struct {
	Ref      entity.DatasetRef
	RowCount int
	HasMeta  bool
}

// List returns every processed dataset with row counts taken from sidecars,
// ordered by filename.
func (s *FS) List(ctx context.Context) ([]DatasetInfo, error) {
	refs, err := s.refs()
	if err != nil {
		return nil, err
	}

	infos := make([]DatasetInfo, 0, len(refs))
	for _, ref := range refs {
		info := DatasetInfo{Ref: ref}
		if sc, err := readSidecar(ref.Path); err == nil {
			info.RowCount = sc.RowCount
			info.HasMeta = true
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Ref.Path < infos[j].Ref.Path
	})
	return infos, nil
}

func (s *FS) refs() ([]entity.DatasetRef, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read processed directory: %w", err)
	}

	var refs []entity.DatasetRef
	for _, ent := range dirents {
		if ent.IsDir() || filepath.Ext(ent.Name()) != datasetExt {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			return nil, err
		}
		refs = append(refs, entity.DatasetRef{
			Path:    filepath.Join(s.dir, ent.Name()),
			ModTime: info.ModTime(),
		})
	}
	return refs, nil
}

func readSidecar(datasetPath string) (entity.Sidecar, error) {
	data, err := os.ReadFile(entity.SidecarPath(datasetPath))
	if err != nil {
		return entity.Sidecar{}, err
	}

	var sc entity.Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return entity.Sidecar{}, fmt.Errorf("parse sidecar: %w", err)
	}
	return sc, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, name := range a {
		seen[name] = struct{}{}
	}
	for _, name := range b {
		if _, ok := seen[name]; !ok {
			return false
		}
	}
	return true
}
