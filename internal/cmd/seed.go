package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// pngMagic starts every seeded plot so image viewers recognize the type.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var seedSpecies = []string{"red_deer", "roe_deer", "wild_boar", "red_fox", "badger", "pine_marten"}

// plot name prefix for each period, in organize.Periods order
var seedPlotPrefixes = []string{
	"Aggregated_Effect_of_Hour_of_Day_on_",
	"Aggregated_Effect_of_Day_of_Week_on_",
	"Aggregated_Effect_of_Week_on_",
	"Aggregated_Effect_of_Year_on_",
}

// decoys are written next to the plots and match no period pattern.
var seedDecoys = []string{
	"Effect_of_Hour_of_Day_on_%s_Counts.png",
	"Aggregated_Effect_of_Month_on_%s_Counts_aggregated.png",
	"%s_counts.csv",
}

// NewSeedCmd creates and returns the seed subcommand.
// It generates a synthetic site/category tree of plots for testing.
func NewSeedCmd(g *globals) *cobra.Command {
	var (
		outputPath string
		sites      int
		categories int
		decoys     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic source tree of count plots",
		Long: `Generate a SITE/CATEGORY/FILE tree for trying out organize.

Each site gets a directory per category, and each category gets one plot per
period. Plot contents are a PNG signature followed by a random UUID, so every
copy can be traced back to its source. With --decoys, files that match no
period pattern are added as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout(), g.log, outputPath, sites, categories, decoys)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVar(&sites, "sites", 3, "Number of sites to generate")
	cmd.Flags().IntVar(&categories, "categories", 3, fmt.Sprintf("Number of categories per site (max %d)", len(seedSpecies)))
	cmd.Flags().BoolVar(&decoys, "decoys", true, "Add files that match no period pattern")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(w io.Writer, log logrus.FieldLogger, outputPath string, sites, categories int, decoys bool) error {
	if sites < 1 {
		return fmt.Errorf("--sites must be at least 1, got %d", sites)
	}
	if categories < 1 || categories > len(seedSpecies) {
		return fmt.Errorf("--categories must be between 1 and %d, got %d", len(seedSpecies), categories)
	}

	plots, others := 0, 0
	for s := 1; s <= sites; s++ {
		site := fmt.Sprintf("site%02d", s)
		for _, species := range seedSpecies[:categories] {
			dir := filepath.Join(outputPath, site, species)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			for _, prefix := range seedPlotPrefixes {
				name := prefix + species + "_Counts_aggregated.png"
				if err := writeSeedFile(filepath.Join(dir, name)); err != nil {
					return err
				}
				plots++
			}
			if !decoys {
				continue
			}
			for _, pattern := range seedDecoys {
				if err := writeSeedFile(filepath.Join(dir, fmt.Sprintf(pattern, species))); err != nil {
					return err
				}
				others++
			}
		}
		log.WithField("site", site).Debug("seeded site")
	}

	// a stray file at the site level is skipped by organize
	if decoys {
		if err := writeSeedFile(filepath.Join(outputPath, "README.png")); err != nil {
			return err
		}
		others++
	}

	fmt.Fprintf(w, "Created %d plots and %d other files in %s\n", plots, others, outputPath)
	return nil
}

func writeSeedFile(path string) error {
	content := append(append([]byte{}, pngMagic...), []byte(uuid.New().String()+"\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
