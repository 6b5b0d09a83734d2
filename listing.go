package ftpengine

import (
	"bytes"
	"log/slog"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// EntryKind tells files and directories apart in a listing.
type EntryKind int

const (
	File EntryKind = iota
	Directory
)

// String returns "file" or "dir".
func (k EntryKind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// RemoteEntry represents a file or directory row from a LIST -l listing.
type RemoteEntry struct {
	Kind EntryKind
	Size uint64
	Name string
}

// unixRowRegex matches a Unix long-listing row:
//
//	perms links owner group size month day time/year name
//
// The name is everything after the date and may contain spaces.
var unixRowRegex = regexp.MustCompile(
	`^(\S)[rwxsStTl-]{9}[.+@]?\s+\d+\s+\S+\s+\S+\s+(\d+)\s+\S+\s+\S+\s+\S+\s+(.+)$`)

// parseListing decodes the rows of a Unix-style directory listing, preserving
// their order. Lines that are not rows (banners, "total N", symlinks and other
// special files) are skipped.
func parseListing(data []byte, logger *slog.Logger) ([]RemoteEntry, error) {
	if !utf8.Valid(data) {
		return nil, &GarbageError{Reason: "listing is not valid text"}
	}

	var entries []RemoteEntry
	for raw := range bytes.SplitSeq(data, []byte("\n")) {
		line := string(bytes.TrimSuffix(raw, []byte("\r")))
		if line == "" {
			continue
		}
		entry, ok := parseListLine(line)
		if !ok {
			logger.Debug("skipping listing line", "raw", line)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseListLine parses a single listing row.
func parseListLine(line string) (RemoteEntry, bool) {
	matches := unixRowRegex.FindStringSubmatch(line)
	if matches == nil {
		return RemoteEntry{}, false
	}

	var kind EntryKind
	switch matches[1] {
	case "d":
		kind = Directory
	case "-":
		kind = File
	default:
		return RemoteEntry{}, false
	}

	size, err := strconv.ParseUint(matches[2], 10, 64)
	if err != nil {
		return RemoteEntry{}, false
	}

	return RemoteEntry{Kind: kind, Size: size, Name: matches[3]}, true
}
