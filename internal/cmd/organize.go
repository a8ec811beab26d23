package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/internal/config"
	"github.com/dendrascience/tidy-counts/internal/ui"
	"github.com/dendrascience/tidy-counts/organize"
)

// NewOrganizeCmd creates and returns the organize subcommand.
// It copies period plots from site/category into category/period.
func NewOrganizeCmd(g *globals) *cobra.Command {
	var (
		sourcePath   string
		targetPath   string
		firstMatch   bool
		dryRun       bool
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Copy period plots into a category/period tree",
		Long: `Copy aggregated count plots into a tree organized by category and period.

The source is laid out as SITE/CATEGORY/FILE. Every file named like
Aggregated_Effect_of_<Period>_on_<name>_Counts_aggregated.png is copied to
TARGET/CATEGORY/<period>/SITE_FILE, where period is hour, day, week or year.
Other files are skipped. Existing copies are overwritten, so the command is
safe to re-run. The first I/O error stops the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.cfg.Organize
			if cmd.Flags().Changed("source") {
				opts.Source = sourcePath
			}
			if cmd.Flags().Changed("target") {
				opts.Target = targetPath
			}
			if cmd.Flags().Changed("first-match") {
				opts.FirstMatch = firstMatch
			}
			if dryRun {
				return runOrganizeDryRun(cmd.OutOrStdout(), opts)
			}
			var progress io.Writer
			if showProgress {
				progress = cmd.ErrOrStderr()
			}
			return runOrganize(cmd.Context(), cmd.OutOrStdout(), progress, g.log, opts)
		},
	}

	cmd.Flags().StringVarP(&sourcePath, "source", "s", organize.DefaultSource, "Source tree laid out as site/category/file")
	cmd.Flags().StringVarP(&targetPath, "target", "t", organize.DefaultTarget, "Target tree, created as needed")
	cmd.Flags().BoolVar(&firstMatch, "first-match", false, "Copy a file only for the first matching period")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be copied without copying")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")

	return cmd
}

// matchPolicy returns the policy selected by --first-match when the flag was
// given, and the configured one otherwise.
func matchPolicy(cmd *cobra.Command, cfg config.Organize, firstMatch bool) organize.MatchPolicy {
	if cmd.Flags().Changed("first-match") {
		cfg.FirstMatch = firstMatch
	}
	return cfg.Policy()
}

func runOrganizeDryRun(w io.Writer, opts config.Organize) error {
	plan, err := organize.Plan(opts.Source, opts.Target, opts.Policy())
	if err != nil {
		return err
	}
	for _, c := range plan {
		fmt.Fprintf(w, "Would copy %s to %s\n", c.Node.Path, c.Target)
	}
	fmt.Fprintln(w, ui.Subtle(fmt.Sprintf("%d copies planned", len(plan))))
	return nil
}

// runOrganize performs the copy. When progress is not nil a bar sized from a
// planning pass is drawn on it.
func runOrganize(ctx context.Context, w, progress io.Writer, log logrus.FieldLogger, opts config.Organize) error {
	if ctx == nil {
		ctx = context.Background()
	}
	o := organize.New(opts.Policy(), w)
	o.Logger = log

	if progress != nil {
		plan, err := organize.Plan(opts.Source, opts.Target, opts.Policy())
		if err != nil {
			return err
		}
		bar := progressbar.NewOptions(len(plan),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("organizing"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(progress) }),
		)
		o.OnCopy = func(organize.Copy) { bar.Add(1) }
		defer bar.Finish()
	}

	log.WithFields(logrus.Fields{
		"source": opts.Source,
		"target": opts.Target,
		"policy": opts.Policy().String(),
	}).Debug("organizing plots")

	sum, err := o.Run(ctx, opts.Source, opts.Target)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"scanned":   sum.Scanned,
		"copied":    sum.Copied,
		"unmatched": sum.Unmatched,
	}).Info("organize complete")
	return nil
}
