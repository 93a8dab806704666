package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/pipeline"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/table"
	"github.com/dennysrmorales/data-pipeline-dashboard/internal/pkg/pkgerror"
)

func newProcessCommand() *cobra.Command {
	var (
		file    string
		rawDir  string
		outDir  string
		output  string
		require []string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transform raw data files into processed datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(pipeline.Dependency{RawDir: rawDir, OutDir: outDir})
			if err != nil {
				return err
			}

			if file == "" {
				return p.ProcessAll(cmd.Context())
			}

			var opts []pipeline.Option
			if output != "" {
				opts = append(opts, pipeline.WithOutputName(output))
			}
			if len(require) > 0 {
				expected, err := parseRequire(require)
				if err != nil {
					return err
				}
				opts = append(opts, pipeline.WithExpectedSchema(expected))
			}

			outPath, err := p.Process(cmd.Context(), file, opts...)
			if err != nil {
				if errors.Is(err, pkgerror.ErrNotFound) {
					printRawFiles(cmd, p)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Processed %s -> %s\n", file, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Raw file to process (default: every recognized file)")
	cmd.Flags().StringVar(&rawDir, "raw-dir", "data/raw", "Directory holding raw data files")
	cmd.Flags().StringVar(&outDir, "out-dir", "data/processed", "Directory for processed datasets")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output filename, used verbatim")
	cmd.Flags().StringSliceVar(&require, "require", nil, "Required columns as col:type pairs (types: int64, float64, bool, string)")

	return cmd
}

func parseRequire(pairs []string) (map[string]table.DType, error) {
	expected := make(map[string]table.DType, len(pairs))
	for _, pair := range pairs {
		name, typeName, ok := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --require entry %q, want col:type", pair)
		}
		dtype, err := table.ParseDType(typeName)
		if err != nil {
			return nil, fmt.Errorf("invalid --require entry %q: %w", pair, err)
		}
		expected[name] = dtype
	}
	return expected, nil
}

func printRawFiles(cmd *cobra.Command, p *pipeline.Pipeline) {
	files, err := p.RawFiles()
	if err != nil || len(files) == 0 {
		return
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Available raw files:")
	for _, name := range files {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", name)
	}
}
