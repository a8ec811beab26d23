// Command copy-files copies the period plots under ./time_series into
// ./time_series_by_category/CATEGORY/PERIOD/SITE_FILE.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/dendrascience/tidy-counts/organize"
	"github.com/dendrascience/tidy-counts/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()
	if *showVersion {
		version.PrintVersion(os.Stdout, "copy-files")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	o := organize.New(organize.EveryMatch, os.Stdout)
	if _, err := o.Run(ctx, organize.DefaultSource, organize.DefaultTarget); err != nil {
		stop()
		log.Fatal(err)
	}
}
