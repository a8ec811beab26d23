package organize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	DefaultSource = "./time_series"
	DefaultTarget = "./time_series_by_category"
)

type (
	// Copy is one planned or performed source-to-target copy.
	Copy struct {
		Node   Node
		Period Period
		Target string
	}
	// Summary counts what a run did.
	Summary struct {
		Scanned   int // files visited
		Matched   int // files matching at least one period
		Copied    int // copies written, one file may be copied more than once
		Unmatched int // files skipped because no period matched
	}
	// Organizer copies plots from a site/category tree into a
	// category/period tree.
	Organizer struct {
		Policy MatchPolicy
		// Report receives one "Copied <src> to <dst>" line per copy.
		// Nothing is reported when nil.
		Report io.Writer
		// OnCopy, when set, is called after every successful copy.
		OnCopy func(Copy)
		Logger logrus.FieldLogger
	}
)

// New returns an Organizer that reports copies to report.
func New(policy MatchPolicy, report io.Writer) *Organizer {
	return &Organizer{Policy: policy, Report: report}
}

func (o *Organizer) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Plan returns the copies a run over sourceDir would make, in the order it
// would make them. Nothing is written.
func Plan(sourceDir, targetDir string, policy MatchPolicy) ([]Copy, error) {
	var copies []Copy
	err := Walk(sourceDir, func(n Node) error {
		for _, p := range Classify(n.Name, policy) {
			copies = append(copies, Copy{Node: n, Period: p, Target: TargetPath(targetDir, n, p)})
		}
		return nil
	})
	return copies, err
}

// Run walks sourceDir and copies every matching file into targetDir. Target
// directories are created as they are first needed. The first error aborts
// the run; copies made before it are kept and counted in the Summary.
func (o *Organizer) Run(ctx context.Context, sourceDir, targetDir string) (Summary, error) {
	var sum Summary
	log := o.logger()

	err := Walk(sourceDir, func(n Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum.Scanned++

		periods := Classify(n.Name, o.Policy)
		if len(periods) == 0 {
			sum.Unmatched++
			log.WithField("path", n.Path).Debug("no period pattern matched")
			return nil
		}
		sum.Matched++

		for _, p := range periods {
			c := Copy{Node: n, Period: p, Target: TargetPath(targetDir, n, p)}
			if err := o.copy(c); err != nil {
				return err
			}
			sum.Copied++
			if o.Report != nil {
				fmt.Fprintf(o.Report, "Copied %s to %s\n", n.Path, c.Target)
			}
			if o.OnCopy != nil {
				o.OnCopy(c)
			}
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	log.WithFields(logrus.Fields{
		"scanned":   sum.Scanned,
		"matched":   sum.Matched,
		"copied":    sum.Copied,
		"unmatched": sum.Unmatched,
	}).Debug("organize finished")
	return sum, nil
}

func (o *Organizer) copy(c Copy) error {
	dir := filepath.Dir(c.Target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := CopyFile(c.Node.Path, c.Target); err != nil {
		return fmt.Errorf("copying %s: %w", c.Node.Path, err)
	}
	return nil
}
