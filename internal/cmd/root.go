package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/internal/config"
	"github.com/dendrascience/tidy-counts/internal/logging"
	"github.com/dendrascience/tidy-counts/version"
)

// globals carries the state resolved from persistent flags before any
// subcommand runs.
type globals struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *logrus.Logger
}

func (g *globals) load(cmd *cobra.Command) error {
	g.log = logging.New(cmd.ErrOrStderr(), g.verbose)

	path := g.configPath
	required := cmd.Flags().Changed("config")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.log.WithField("config", path).Debug("configuration loaded")
	return nil
}

// NewRootCmd creates and returns the root cobra command for the tidy-counts CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	g := &globals{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "tidy-counts",
		Short: "tidy-counts - housekeeping for camera-trap count outputs",
		Long: `tidy-counts cleans up the files produced by the count aggregation runs.

Use subcommands to perform different operations:
  - dedupe: Remove repeated animal_counts columns from a CSV file
  - organize: Copy period plots from site/category into category/period
  - count: Show how many plots organize would copy per site and period
  - validate: Check an organized tree against the source tree
  - seed: Generate a synthetic source tree for testing
  - mount: Browse a source tree in the organized layout through FUSE`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to a TOML config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	groupCleanup := "cleanup"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCleanup,
		Title: "Cleanup Passes",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	dedupeCmd := NewDedupeCmd(g)
	organizeCmd := NewOrganizeCmd(g)
	countCmd := NewCountCmd(g)
	validateCmd := NewValidateCmd(g)
	seedCmd := NewSeedCmd(g)
	mountCmd := NewMountCmd(g)

	dedupeCmd.GroupID = groupCleanup
	organizeCmd.GroupID = groupCleanup
	countCmd.GroupID = groupUtilities
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	mountCmd.GroupID = groupUtilities

	rootCmd.AddCommand(dedupeCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(mountCmd)

	return rootCmd
}
