// Command clean-counts removes repeated animal_counts columns from
// hourly_averages.csv and writes hourly_averages_cleaned.csv.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dendrascience/tidy-counts/columns"
	"github.com/dendrascience/tidy-counts/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()
	if *showVersion {
		version.PrintVersion(os.Stdout, "clean-counts")
		return
	}

	res, err := columns.DedupeFile(columns.DefaultInput, columns.DefaultOutput, columns.Options{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Message(columns.DefaultOutput))
}
