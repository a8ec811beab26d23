package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersionPrefersLdflags(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v9.9.9"
	if got := GetVersion(); got != "v9.9.9" {
		t.Errorf("GetVersion() = %q, want %q", got, "v9.9.9")
	}
}

func TestGetFullVersion(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{name: "commit and date", commit: "0123456789abcdef", date: "2024-05-01", want: "v1.0.0 (0123456, built 2024-05-01)"},
		{name: "commit only", commit: "0123456789abcdef", date: "unknown", want: "v1.0.0 (0123456)"},
		{name: "short commit", commit: "abc", date: "2024-05-01", want: "v1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = "v1.0.0", tt.commit, tt.date
			if got := GetFullVersion(); got != tt.want {
				t.Errorf("GetFullVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "clean-counts")
	out := buf.String()
	if !strings.HasPrefix(out, "clean-counts version ") {
		t.Errorf("unexpected first line: %q", out)
	}
	if !strings.Contains(out, "Package: tidy-counts") {
		t.Errorf("missing package line in %q", out)
	}
}
