package ftpengine

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LineEnding is the terminator appended to every command the session writes.
// Replies are accepted with either terminator regardless of this setting.
type LineEnding int

const (
	// CRLF terminates commands with "\r\n" as RFC 959 requires.
	CRLF LineEnding = iota
	// LF terminates commands with a bare "\n".
	LF
)

// String returns "crlf" or "lf".
func (e LineEnding) String() string {
	if e == LF {
		return "lf"
	}
	return "crlf"
}

func (e LineEnding) terminator() string {
	if e == LF {
		return "\n"
	}
	return "\r\n"
}

// ParseLineEnding converts "crlf" or "lf" (any case) to a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crlf", "":
		return CRLF, nil
	case "lf":
		return LF, nil
	default:
		return CRLF, fmt.Errorf("ftp: unknown line ending %q", s)
	}
}

type config struct {
	logger     *slog.Logger
	lineEnding LineEnding
}

// Option is a functional option for configuring a session.
type Option func(*config) error

// WithLogger enables debug logging using the provided logger.
// Commands, replies and state transitions are logged at debug level; the
// argument of PASS is never logged.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//	rx, _ := ftpengine.NewReceiver(ftpengine.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithLineEnding sets the terminator for outgoing commands. CRLF is the
// default; some servers and test fixtures expect LF.
func WithLineEnding(e LineEnding) Option {
	return func(c *config) error {
		if e != CRLF && e != LF {
			return fmt.Errorf("invalid line ending %d", int(e))
		}
		c.lineEnding = e
		return nil
	}
}

func newConfig(options []Option) (*config, error) {
	c := &config{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		lineEnding: CRLF,
	}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ftp: failed to apply option: %w", err)
		}
	}
	return c, nil
}
