package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/columns"
	"github.com/dendrascience/tidy-counts/internal/config"
)

// NewDedupeCmd creates and returns the dedupe subcommand.
// It removes every animal_counts column after the first from a CSV file.
func NewDedupeCmd(g *globals) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		column     string
	)

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Remove repeated animal_counts columns from a CSV file",
		Long: `Remove repeated columns that share a name from a CSV file.

The first column named animal_counts (or --column) is kept in place; later
columns with the same name are dropped from the header and from every row.
All other columns and the row order are preserved. The input is never
modified; the output file is created or overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.cfg.Dedupe
			if cmd.Flags().Changed("input") {
				opts.Input = inputPath
			}
			if cmd.Flags().Changed("output") {
				opts.Output = outputPath
			}
			if cmd.Flags().Changed("column") {
				opts.Column = column
			}
			return runDedupe(cmd.OutOrStdout(), g.log, opts)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", columns.DefaultInput, "Path to the input CSV file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", columns.DefaultOutput, "Path to the cleaned CSV file")
	cmd.Flags().StringVar(&column, "column", columns.DefaultColumn, "Column whose repeats are removed")

	return cmd
}

func runDedupe(w io.Writer, log logrus.FieldLogger, opts config.Dedupe) error {
	log.WithFields(logrus.Fields{
		"input":  opts.Input,
		"output": opts.Output,
		"column": opts.Column,
	}).Debug("deduplicating columns")

	res, err := columns.DedupeFile(opts.Input, opts.Output, columns.Options{Column: opts.Column})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"rows":    res.Rows,
		"columns": res.KeptColumns,
		"dropped": res.Dropped(),
	}).Debug("deduplication finished")
	fmt.Fprintln(w, res.Message(opts.Output))
	return nil
}
