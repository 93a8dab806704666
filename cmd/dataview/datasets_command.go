package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dennysrmorales/data-pipeline-dashboard/internal/dataset/store"
)

func newDatasetsCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List processed datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.NewFS(outDir)

			infos, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No processed datasets found.")
				return nil
			}

			current, ok, err := s.Current(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tROWS\tMODIFIED\t")
			for _, info := range infos {
				rows := "-"
				if info.HasMeta {
					rows = fmt.Sprintf("%d", info.RowCount)
				}
				marker := ""
				if ok && info.Ref.Path == current.Path {
					marker = "(current)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					info.Ref.Path, rows, info.Ref.ModTime.Format("2006-01-02 15:04:05"), marker)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "data/processed", "Directory holding processed datasets")

	return cmd
}
