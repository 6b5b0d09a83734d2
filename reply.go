package ftpengine

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// reply is a complete server reply isolated from the control buffer.
type reply struct {
	// Code is the three-digit reply code (e.g., 220, 530)
	Code int

	// Message is the text of the terminal line
	Message string

	// Lines contains every line of the reply, terminal line last
	Lines []string
}

// String returns the full reply as a string.
func (r *reply) String() string {
	return strings.Join(r.Lines, "\n")
}

// parseReply looks for a complete reply at the start of buf and returns it
// together with the number of bytes it spans. Bytes after the reply belong to
// the next one and are left alone.
//
// Single-line format: "220 Welcome\r\n"
// Multi-line format:
//
//	"220-Welcome to FTP\r\n"
//	"220-This is line 2\r\n"
//	"220 Ready\r\n"
//
// A reply opened with "DDD-" is finished by the first "DDD " line with the
// same code; lines in between may have any shape. Lines end in LF with an
// optional CR before it.
//
// The error is ErrNotEnoughData while the reply may still be completed by more
// input, and a *GarbageError once the bytes cannot be a reply at all.
func parseReply(buf []byte) (*reply, int, error) {
	var lines []string
	openCode := -1
	pos := 0

	for pos < len(buf) {
		nl := bytes.IndexByte(buf[pos:], '\n')
		if nl < 0 {
			break
		}
		raw := bytes.TrimSuffix(buf[pos:pos+nl], []byte("\r"))
		next := pos + nl + 1

		if !utf8.Valid(raw) {
			return nil, 0, &GarbageError{Reason: "reply is not valid text"}
		}
		line := string(raw)
		lines = append(lines, line)

		code, sep, ok := splitReplyLine(line)
		switch {
		case openCode < 0 && !ok:
			return nil, 0, &GarbageError{Reason: "reply line", Line: line}
		case openCode < 0 && sep == ' ':
			return &reply{Code: code, Message: line[4:], Lines: lines}, next, nil
		case openCode < 0:
			openCode = code
		case ok && sep == ' ' && code == openCode:
			return &reply{Code: code, Message: line[4:], Lines: lines}, next, nil
		}
		pos = next
	}

	if openCode >= 0 || isReplyPrefix(buf) {
		return nil, 0, ErrNotEnoughData
	}
	return nil, 0, &GarbageError{Reason: "reply line", Line: string(buf)}
}

// splitReplyLine splits "DDD<sep>text" into its code and separator. ok is
// false if the line has neither a terminal nor a continuation shape.
func splitReplyLine(line string) (code int, sep byte, ok bool) {
	if len(line) < 4 {
		return 0, 0, false
	}
	for i := range 3 {
		c := line[i]
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		code = code*10 + int(c-'0')
	}
	sep = line[3]
	if sep != ' ' && sep != '-' {
		return 0, 0, false
	}
	return code, sep, true
}

// isReplyPrefix reports whether an unterminated first line could still grow
// into a reply line.
func isReplyPrefix(partial []byte) bool {
	for i, c := range partial {
		switch {
		case i < 3:
			if c < '0' || c > '9' {
				return false
			}
		case i == 3:
			return c == ' ' || c == '-'
		}
	}
	return true
}
