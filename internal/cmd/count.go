package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/internal/ui"
	"github.com/dendrascience/tidy-counts/organize"
)

// NewCountCmd creates and returns the count subcommand.
// It reports how many plots each site contributes per period.
func NewCountCmd(g *globals) *cobra.Command {
	var firstMatch bool

	cmd := &cobra.Command{
		Use:   "count [SOURCE]",
		Short: "Count the plots organize would copy, per site and period",
		Long: `Count the files in a site/category tree that match a period pattern.

Nothing is copied. The table shows, for each site, how many copies organize
would make for every period, followed by the number of files that match no
pattern. SOURCE defaults to the configured source tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := g.cfg.Organize.Source
			if len(args) > 0 {
				source = args[0]
			}
			return runCount(cmd.OutOrStdout(), source, matchPolicy(cmd, g.cfg.Organize, firstMatch))
		},
	}

	cmd.Flags().BoolVar(&firstMatch, "first-match", false, "Count a file only for the first matching period")

	return cmd
}

type siteCount struct {
	periods   map[organize.Period]int
	unmatched int
}

func runCount(w io.Writer, source string, policy organize.MatchPolicy) error {
	sites := make(map[string]*siteCount)
	site := func(name string) *siteCount {
		sc, ok := sites[name]
		if !ok {
			sc = &siteCount{periods: make(map[organize.Period]int)}
			sites[name] = sc
		}
		return sc
	}

	err := organize.Walk(source, func(n organize.Node) error {
		sc := site(n.Site)
		periods := organize.Classify(n.Name, policy)
		if len(periods) == 0 {
			sc.unmatched++
		}
		for _, p := range periods {
			sc.periods[p]++
		}
		return nil
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sites))
	for name := range sites {
		names = append(names, name)
	}
	sort.Strings(names)

	header := []string{"site"}
	for _, p := range organize.Periods {
		header = append(header, p.String())
	}
	header = append(header, "unmatched")

	var rows [][]string
	total := 0
	for _, name := range names {
		sc := sites[name]
		row := []string{name}
		for _, p := range organize.Periods {
			row = append(row, strconv.Itoa(sc.periods[p]))
			total += sc.periods[p]
		}
		row = append(row, strconv.Itoa(sc.unmatched))
		rows = append(rows, row)
	}

	fmt.Fprint(w, ui.Table(header, rows))
	fmt.Fprintln(w, ui.Subtle(fmt.Sprintf("Total copies: %d across %d sites", total, len(names))))
	return nil
}
