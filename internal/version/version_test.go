package version

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

func withPlainColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func withVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestColoredKeepsText(t *testing.T) {
	withPlainColor(t)
	tests := []string{"0.1.0-dev", "1.2.3", "2.0.0+build.7", "nightly"}
	for _, v := range tests {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestColoredPaintsComponents(t *testing.T) {
	if os.Getenv("NO_COLOR") != "" {
		t.Skip("NO_COLOR is set")
	}
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
	withVersion(t, "1.2.3-rc1", "", "")

	want := "\x1b[33;1m1\x1b[0m.\x1b[32;1m2\x1b[0m.\x1b[34;1m3\x1b[0m-rc1"
	if got := Colored(); got != want {
		t.Fatalf("Colored() = %q, want %q", got, want)
	}
}

func TestInfo(t *testing.T) {
	withPlainColor(t)

	withVersion(t, "1.2.3", "", "")
	if got := Info(); got != "minic 1.2.3" {
		t.Fatalf("Info() = %q", got)
	}

	withVersion(t, "1.2.3", "abc123", "2024-01-15T10:30:00Z")
	want := "minic 1.2.3\ncommit: abc123\nbuilt:  2024-01-15T10:30:00Z"
	if got := Info(); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}
