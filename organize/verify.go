package organize

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// Problem is one inconsistency found in an organized tree.
type Problem struct {
	Path   string
	Reason string
}

func (p Problem) String() string {
	return p.Path + ": " + p.Reason
}

// Verify checks that every file under targetDir sits at category/period/file,
// that period is a known period and that file is site_<plot name> with a plot
// name matching that period. When sourceDir is not empty each file must also
// have a source at sourceDir/site/category/<plot name> with the same content.
// The returned error is for failures reading the trees, not for problems.
func Verify(targetDir, sourceDir string) ([]Problem, error) {
	info, err := os.Stat(targetDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", targetDir, ErrNotDirectory)
	}

	var problems []Problem
	err = filepath.WalkDir(targetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(targetDir, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 {
			problems = append(problems, Problem{path, "not at category/period/file depth"})
			return nil
		}
		category, periodName, name := parts[0], parts[1], parts[2]

		period, err := ParsePeriod(periodName)
		if err != nil {
			problems = append(problems, Problem{path, fmt.Sprintf("unknown period directory %q", periodName)})
			return nil
		}

		site, plot, ok := splitTargetName(name, period, sourceDir, category)
		if !ok {
			problems = append(problems, Problem{path, fmt.Sprintf("name is not site_<%s plot>", period)})
			return nil
		}
		if sourceDir == "" {
			return nil
		}

		src := filepath.Join(sourceDir, site, category, plot)
		same, err := sameContent(src, path)
		switch {
		case os.IsNotExist(err):
			problems = append(problems, Problem{path, "source " + src + " is missing"})
		case err != nil:
			return err
		case !same:
			problems = append(problems, Problem{path, "content differs from " + src})
		}
		return nil
	})
	return problems, err
}

// splitTargetName splits a target file name into site and plot name. A site
// may itself contain underscores, so every split whose plot part matches
// period is a candidate; with a source tree the first candidate that exists
// there wins, otherwise the first candidate.
func splitTargetName(name string, period Period, sourceDir, category string) (site, plot string, ok bool) {
	for i := 1; i < len(name); i++ {
		if name[i] != '_' || !period.Matches(name[i+1:]) {
			continue
		}
		s, p := name[:i], name[i+1:]
		if !ok {
			site, plot, ok = s, p, true
		}
		if sourceDir == "" {
			return site, plot, ok
		}
		if _, err := os.Stat(filepath.Join(sourceDir, s, category, p)); err == nil {
			return s, p, true
		}
	}
	return site, plot, ok
}

// Checksum returns the blake3 digest of the file at path.
func Checksum(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

func sameContent(a, b string) (bool, error) {
	ha, err := Checksum(a)
	if err != nil {
		return false, err
	}
	hb, err := Checksum(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ha, hb), nil
}
