package client

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/gonzalop/ftpengine"
)

// Option is a functional option for configuring a Client.
type Option func(*Client) error

// WithTimeout sets the timeout for dialing and for every read or write on the
// control and data connections. Zero disables deadlines.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout < 0 {
			return fmt.Errorf("timeout must not be negative")
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogger enables debug logging using the provided logger.
// The logger is shared with the protocol engine, so commands, replies and
// state transitions are logged as well.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//	c, _ := client.Dial("ftp.example.com:21", client.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithDialer sets a custom dialer for the control and data connections.
// Its Timeout is overwritten by WithTimeout.
func WithDialer(dialer *net.Dialer) Option {
	return func(c *Client) error {
		if dialer == nil {
			return fmt.Errorf("dialer must not be nil")
		}
		c.dialer = dialer
		return nil
	}
}

// WithLineEnding sets the terminator of outgoing commands.
func WithLineEnding(e ftpengine.LineEnding) Option {
	return func(c *Client) error {
		c.lineEnding = e
		return nil
	}
}

// WithReadBufferSize sets how many bytes are read from the control
// connection at a time. The default is 4096.
func WithReadBufferSize(size int) Option {
	return func(c *Client) error {
		if size <= 0 {
			return fmt.Errorf("read buffer size must be positive, got %d", size)
		}
		c.readSize = size
		return nil
	}
}
