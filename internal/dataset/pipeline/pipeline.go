// Package pipeline transforms raw tabular files into processed, query-ready
// datasets: load, optional schema validation, cleanup, and columnar persist
// with a metadata sidecar.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/entity"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgerror"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkguid"
)

const (
	extCSV     = ".csv"
	extParquet = ".parquet"
)

// Transform is a customization step applied after the built-in cleanup.
type Transform func(*table.Table) (*table.Table, error)

type Dependency struct {
	RawDir string
	OutDir string
	RunID  pkguid.NumberID
}

// Pipeline processes raw files from RawDir into parquet datasets in OutDir.
type Pipeline struct {
	rawDir string
	outDir string
	runID  pkguid.NumberID
}

// New builds a Pipeline and creates the output directory if needed.
func New(dep Dependency) (*Pipeline, error) {
	if err := os.MkdirAll(dep.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	runID := dep.RunID
	if runID == nil {
		// Best effort; run IDs only group log lines.
		if gen, err := pkguid.NewSnowflake(); err == nil {
			runID = gen
		}
	}

	return &Pipeline{
		rawDir: dep.RawDir,
		outDir: dep.OutDir,
		runID:  runID,
	}, nil
}

type processConfig struct {
	outputName string
	expected   map[string]table.DType
	transforms []Transform
}

// Option tunes a single Process call.
type Option func(*processConfig)

// WithOutputName overrides the default output filename. The name is used
// verbatim, with no extension validation.
func WithOutputName(name string) Option {
	return func(cfg *processConfig) {
		cfg.outputName = name
	}
}

// WithExpectedSchema turns on schema validation: every listed column must
// exist and is coerced to the expected dtype.
func WithExpectedSchema(expected map[string]table.DType) Option {
	return func(cfg *processConfig) {
		cfg.expected = expected
	}
}

// WithTransform appends a customization step run after the built-in cleanup.
func WithTransform(fn Transform) Option {
	return func(cfg *processConfig) {
		cfg.transforms = append(cfg.transforms, fn)
	}
}

// Process runs the complete pipeline for one raw file: load, validate,
// transform, persist. It returns the path of the processed dataset.
func (p *Pipeline) Process(ctx context.Context, filename string, opts ...Option) (string, error) {
	cfg := processConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := slog.Default()
	if p.runID != nil {
		log = log.With("run_id", p.runID.Generate())
	}

	tbl, err := p.load(filename)
	if err != nil {
		return "", err
	}
	log.InfoContext(ctx, "loaded raw file", "file", filename, "rows", tbl.NumRows(), "columns", tbl.NumCols())

	if cfg.expected != nil {
		if err := validateSchema(tbl, cfg.expected); err != nil {
			return "", pkgerror.NewInvalidInput(err)
		}
	}

	tbl = tbl.DropAllNullRows()
	for _, fn := range cfg.transforms {
		if tbl, err = fn(tbl); err != nil {
			return "", fmt.Errorf("transform: %w", err)
		}
	}
	log.InfoContext(ctx, "transformed", "file", filename, "rows", tbl.NumRows())

	outputName := cfg.outputName
	if outputName == "" {
		outputName = strings.TrimSuffix(filename, filepath.Ext(filename)) + extParquet
	}
	outputPath := filepath.Join(p.outDir, outputName)

	if err := tbl.WriteParquet(outputPath); err != nil {
		return "", err
	}
	if err := writeSidecar(outputPath, tbl); err != nil {
		return "", err
	}

	log.InfoContext(ctx, "saved processed dataset", "path", outputPath, "rows", tbl.NumRows())
	return outputPath, nil
}

// ProcessAll processes every recognized file in the raw directory. A failure
// on one file is reported and does not abort the rest; the joined error is
// returned for exit-code purposes.
func (p *Pipeline) ProcessAll(ctx context.Context) error {
	files, err := p.RawFiles()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		slog.WarnContext(ctx, "no raw data files found", "dir", p.rawDir)
		return nil
	}

	var errs []error
	for _, filename := range files {
		if _, err := p.Process(ctx, filename); err != nil {
			slog.ErrorContext(ctx, "failed to process raw file", "file", filename, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", filename, err))
		}
	}

	return errors.Join(errs...)
}

// RawFiles lists the recognized raw files (by extension) in the raw directory.
func (p *Pipeline) RawFiles() ([]string, error) {
	dirents, err := os.ReadDir(p.rawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw directory: %w", err)
	}

	var files []string
	for _, ent := range dirents {
		if ent.IsDir() {
			continue
		}
		switch filepath.Ext(ent.Name()) {
		case extCSV, extParquet:
			files = append(files, ent.Name())
		}
	}
	return files, nil
}

func (p *Pipeline) load(filename string) (*table.Table, error) {
	path := filepath.Join(p.rawDir, filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: raw data file %s", pkgerror.ErrNotFound, path)
		}
		return nil, err
	}

	// Format is detected by extension only; no content sniffing.
	switch filepath.Ext(filename) {
	case extCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return table.ReadCSV(f)
	case extParquet:
		return table.ReadParquet(path)
	default:
		return nil, pkgerror.NewUnsupportedFormat(filename)
	}
}

func validateSchema(tbl *table.Table, expected map[string]table.DType) error {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		col, ok := tbl.Column(name)
		if !ok {
			return fmt.Errorf("missing required column: %q", name)
		}
		if col.Type != expected[name] {
			if err := tbl.Cast(name, expected[name]); err != nil {
				return fmt.Errorf("schema validation: %w", err)
			}
		}
	}
	return nil
}

func writeSidecar(datasetPath string, tbl *table.Table) error {
	sidecar := entity.Sidecar{
		Columns:  tbl.Columns(),
		Dtypes:   tbl.DTypes(),
		RowCount: tbl.NumRows(),
	}

	data, err := json.MarshalIndent(sidecar, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sidecar: %w", err)
	}

	if err := os.WriteFile(entity.SidecarPath(datasetPath), data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}
