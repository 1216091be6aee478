package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })
}

func TestBanner(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cases := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "strata 0.1.0-dev"},
		{"1.2.3", "abc123def456789", "", "strata 1.2.3 (abc123def456)"},
		{"1.0.0-beta.1", "abc", "2024-01-15T10:30:00Z", "strata 1.0.0-beta.1 (abc) built 2024-01-15T10:30:00Z"},
		{"nightly", "", "", "strata nightly"},
	}
	for _, tc := range cases {
		withVersion(t, tc.version, tc.commit, tc.date)
		if got := Banner(); got != tc.want {
			t.Fatalf("Banner() = %q, want %q", got, tc.want)
		}
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	withVersion(t, "2.0.0-alpha", "", "")
	got := Colored()
	if got == "2.0.0-alpha" {
		t.Fatalf("expected colour escapes in %q", got)
	}
	color.NoColor = true
	if got := Colored(); got != "2.0.0-alpha" {
		t.Fatalf("Colored() without colour = %q", got)
	}
}
