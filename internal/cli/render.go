package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/gonzalop/ftpengine"
)

// renderListing writes entries to w as a table in listing order, followed by
// a one-line summary. Directory names are highlighted when colorize is set.
func renderListing(w io.Writer, entries []ftpengine.RemoteEntry, colorize bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Directory is empty")
		return err
	}

	dirColor := color.New(color.FgBlue, color.Bold)
	if !colorize {
		dirColor.DisableColor()
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Type", "Size")
	table.Options(
		tablewriter.WithRendition(tw.Rendition{Borders: tw.Border{Left: tw.Pending, Right: tw.Pending, Top: tw.Pending, Bottom: tw.Pending}}),
	)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header = tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}}
		cfg.Row = tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}}
	})

	var files, dirs int
	var total uint64
	for _, entry := range entries {
		name := entry.Name
		size := humanize.Bytes(entry.Size)
		if entry.Kind == ftpengine.Directory {
			name = dirColor.Sprint(name + "/")
			size = "-"
			dirs++
		} else {
			files++
			total += entry.Size
		}
		if err := table.Append([]string{name, entry.Kind.String(), size}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s, %s, %s\n",
		plural(dirs, "directory", "directories"),
		plural(files, "file", "files"),
		humanize.Bytes(total))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}

// colorEnabled reports whether directory names written to out should be
// highlighted: only on a terminal, and never when noColor is set.
func colorEnabled(out io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
