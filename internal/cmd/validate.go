package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/internal/ui"
	"github.com/dendrascience/tidy-counts/organize"
)

var errValidationFailed = errors.New("validation failed")

// NewValidateCmd creates and returns the validate subcommand.
// It checks an organized tree for misplaced, misnamed or drifted files.
func NewValidateCmd(g *globals) *cobra.Command {
	var (
		targetPath string
		sourcePath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an organized tree for consistency",
		Long: `Validate a tree produced by organize.

Every file must sit at CATEGORY/PERIOD/SITE_FILE, PERIOD must be one of hour,
day, week or year, and FILE must match that period's plot name. With --source
each copy is also compared, by blake3 checksum, with its source file.
Exits non-zero when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := g.cfg.Organize.Target
			if cmd.Flags().Changed("path") {
				target = targetPath
			}
			g.log.WithField("path", target).Debug("validating organized tree")
			return runValidate(cmd.OutOrStdout(), target, sourcePath)
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Organized tree to validate (default: configured target)")
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Source tree to compare checksums against")

	return cmd
}

func runValidate(w io.Writer, target, source string) error {
	problems, err := organize.Verify(target, source)
	if err != nil {
		return err
	}
	for _, p := range problems {
		ui.Failure(w, "%s", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d problems in %s", errValidationFailed, len(problems), target)
	}
	if source != "" {
		ui.Success(w, "%s is consistent with %s", target, source)
	} else {
		ui.Success(w, "%s is consistent", target)
	}
	return nil
}
