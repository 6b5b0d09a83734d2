package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gonzalop/ftpengine"
)

func TestRenderListing(t *testing.T) {
	t.Parallel()
	entries := []ftpengine.RemoteEntry{
		{Kind: ftpengine.File, Size: 5430, Name: "favicon.ico"},
		{Kind: ftpengine.File, Size: 660, Name: "index.html"},
		{Kind: ftpengine.Directory, Size: 3, Name: "pub"},
	}

	var out bytes.Buffer
	if err := renderListing(&out, entries, false); err != nil {
		t.Fatalf("renderListing() error = %v", err)
	}
	got := out.String()

	for _, want := range []string{"favicon.ico", "5.4 kB", "index.html", "660 B", "pub/", "dir", "1 directory, 2 files, 6.1 kB"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "favicon.ico") > strings.Index(got, "index.html") {
		t.Errorf("entries out of listing order:\n%s", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("output contains escape codes with color disabled:\n%s", got)
	}
}

func TestRenderListing_Empty(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := renderListing(&out, nil, true); err != nil {
		t.Fatalf("renderListing() error = %v", err)
	}
	if out.String() != "Directory is empty\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestPlural(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{1234, "1,234 files"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "file", "files"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if colorEnabled(&buf, false) {
		t.Error("color enabled for a buffer")
	}
	if colorEnabled(os.Stdout, true) {
		t.Error("color enabled despite no-color")
	}
}
