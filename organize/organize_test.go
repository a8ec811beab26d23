package organize

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	hourPlot = "Aggregated_Effect_of_Hour_of_Day_on_species1_Counts_aggregated.png"
	dayPlot  = "Aggregated_Effect_of_Day_of_Week_on_species1_Counts_aggregated.png"
	yearPlot = "Aggregated_Effect_of_Year_on_boar_Counts_aggregated.png"
)

// writeTree creates every path (relative to root) with its own name as content.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("content of "+p), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// listTree returns every regular file under root as relative path -> content.
func listTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return files
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "time_series")
	dst := filepath.Join(dir, "time_series_by_category")
	writeTree(t, src, filepath.Join("siteA", "species1", hourPlot))

	var report bytes.Buffer
	sum, err := New(EveryMatch, &report).Run(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := filepath.Join(dst, "species1", "hour", "siteA_"+hourPlot)
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("expected copy at %s: %v", want, err)
	}
	if string(data) != "content of "+filepath.Join("siteA", "species1", hourPlot) {
		t.Errorf("copied content = %q", data)
	}

	line := "Copied " + filepath.Join(src, "siteA", "species1", hourPlot) + " to " + want + "\n"
	if report.String() != line {
		t.Errorf("report = %q, want %q", report.String(), line)
	}
	if sum != (Summary{Scanned: 1, Matched: 1, Copied: 1}) {
		t.Errorf("summary = %+v", sum)
	}
}

func TestRunKeepsRelativePrefix(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "time_series"), filepath.Join("siteA", "species1", hourPlot))
	t.Chdir(dir)

	var report bytes.Buffer
	if _, err := New(EveryMatch, &report).Run(context.Background(), DefaultSource, DefaultTarget); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	sep := string(filepath.Separator)
	src := "." + sep + strings.Join([]string{"time_series", "siteA", "species1", hourPlot}, sep)
	dst := "." + sep + strings.Join([]string{"time_series_by_category", "species1", "hour", "siteA_" + hourPlot}, sep)
	if want := "Copied " + src + " to " + dst + "\n"; report.String() != want {
		t.Errorf("report = %q, want %q", report.String(), want)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("expected copy at %s: %v", dst, err)
	}
}

func TestUnder(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		base string
		want string
	}{
		{base: "", want: "a" + sep + "b"},
		{base: ".", want: "." + sep + "a" + sep + "b"},
		{base: "." + sep + "src", want: "." + sep + "src" + sep + "a" + sep + "b"},
		{base: "src" + sep, want: "src" + sep + "a" + sep + "b"},
	}
	for _, tt := range tests {
		if got := under(tt.base, "a", "b"); got != tt.want {
			t.Errorf("under(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestRunTreeShape(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTree(t, src,
		"siteA/species1/"+hourPlot,
		"siteA/species1/"+dayPlot,
		"siteA/species1/readme.txt",
		"siteA/species2/"+yearPlot,
		"siteB/species1/"+hourPlot,
		"siteB/stray.png",
		"toplevel.csv",
		"siteC/species3/nested/"+hourPlot,
	)

	var report bytes.Buffer
	sum, err := New(EveryMatch, &report).Run(context.Background(), src, dst)
	if err != nil {
		t.Fatal(err)
	}

	got := listTree(t, dst)
	want := map[string]string{
		"species1/hour/siteA_" + hourPlot: "content of " + filepath.Join("siteA", "species1", hourPlot),
		"species1/day/siteA_" + dayPlot:   "content of " + filepath.Join("siteA", "species1", dayPlot),
		"species2/year/siteA_" + yearPlot: "content of " + filepath.Join("siteA", "species2", yearPlot),
		"species1/hour/siteB_" + hourPlot: "content of " + filepath.Join("siteB", "species1", hourPlot),
	}
	if len(got) != len(want) {
		t.Fatalf("target tree has %d files, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}

	// only the directories that were needed exist
	if _, err := os.Stat(filepath.Join(dst, "species1", "week")); !os.IsNotExist(err) {
		t.Errorf("unexpected week directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "species3")); !os.IsNotExist(err) {
		t.Errorf("nested directory should not be organized: %v", err)
	}

	if sum.Scanned != 5 || sum.Matched != 4 || sum.Copied != 4 || sum.Unmatched != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if n := strings.Count(report.String(), "\n"); n != 4 {
		t.Errorf("report has %d lines, want 4", n)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTree(t, src, "s1/c1/"+hourPlot, "s2/c1/"+dayPlot, "s2/c2/"+yearPlot)

	o := New(EveryMatch, nil)
	if _, err := o.Run(context.Background(), src, dst); err != nil {
		t.Fatal(err)
	}
	first := listTree(t, dst)

	// a tampered copy is restored by the second run
	tampered := filepath.Join(dst, "c1", "hour", "s1_"+hourPlot)
	if err := os.WriteFile(tampered, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := o.Run(context.Background(), src, dst); err != nil {
		t.Fatal(err)
	}
	second := listTree(t, dst)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("%s differs after re-run", k)
		}
	}
}

func TestRunSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := New(EveryMatch, nil).Run(context.Background(), filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = New(EveryMatch, nil).Run(context.Background(), file, filepath.Join(dir, "dst"))
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("expected ErrNotDirectory, got %v", err)
	}
}

func TestRunAbortsOnCopyFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTree(t, src, "a/c1/"+hourPlot, "b/c2/"+hourPlot)

	// dst/c2 is a file, so dst/c2/hour cannot be created
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "c2"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var report bytes.Buffer
	sum, err := New(EveryMatch, &report).Run(context.Background(), src, dst)
	if err == nil {
		t.Fatal("expected an error")
	}
	if sum.Copied != 1 {
		t.Errorf("Copied = %d, want 1", sum.Copied)
	}
	// the copy made before the failure stays
	if _, err := os.Stat(filepath.Join(dst, "c1", "hour", "a_"+hourPlot)); err != nil {
		t.Errorf("earlier copy missing: %v", err)
	}
}

func TestRunHonorsContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTree(t, src, "a/c1/"+hourPlot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(EveryMatch, nil).Run(ctx, src, filepath.Join(dir, "dst"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunOnCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTree(t, src, "a/c1/"+hourPlot, "a/c1/"+yearPlot)

	var seen []Period
	o := &Organizer{OnCopy: func(c Copy) { seen = append(seen, c.Period) }}
	if _, err := o.Run(context.Background(), src, filepath.Join(dir, "dst")); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != Hour || seen[1] != Year {
		t.Errorf("OnCopy saw %v", seen)
	}
}

func TestPlanMatchesRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeTree(t, src, "a/c1/"+hourPlot, "a/c1/other.png", "b/c1/"+dayPlot)

	plan, err := Plan(src, dst, EveryMatch)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan) != 2 {
		t.Fatalf("plan has %d copies, want 2", len(plan))
	}
	if plan[0].Target != filepath.Join(dst, "c1", "hour", "a_"+hourPlot) {
		t.Errorf("plan[0].Target = %s", plan[0].Target)
	}
	if plan[1].Period != Day || plan[1].Node.Site != "b" {
		t.Errorf("plan[1] = %+v", plan[1])
	}
	// planning writes nothing
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("Plan created the target directory")
	}
}

func TestCopyFilePreservesMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o640); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	// existing, longer destination is truncated
	if err := os.WriteFile(dst, []byte("much longer old content"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "pixels" {
		t.Errorf("content = %q", data)
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(dir, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular, got %v", err)
	}
}
