// Package client drives an ftpengine session over a real network connection.
//
// The engine decides what may be sent and how replies are interpreted; this
// package owns the sockets and runs the read loop that feeds the engine until
// a reply is complete.
//
//	c, err := client.Dial("ftp.example.com:21", client.WithTimeout(10*time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Login("anonymous", "anonymous@example.com"); err != nil {
//	    log.Fatal(err)
//	}
//	entries, err := c.List()
package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"strconv"
	"sync"
	"time"

	"github.com/gonzalop/ftpengine"
)

var (
	// ErrSessionBroken is returned by every call after the connection or the
	// protocol exchange failed. The Client must be closed and redialed.
	ErrSessionBroken = errors.New("ftp: session is broken")

	// ErrClosed is returned by every call after Close.
	ErrClosed = errors.New("ftp: client is closed")
)

// Client is a blocking FTP client for the commands the engine supports.
// It is safe for concurrent use, but calls are serialized.
type Client struct {
	// conn is the control connection, wrapped with deadlines
	conn net.Conn

	// host is the control connection host, used when PASV reports 0.0.0.0
	host string

	timeout    time.Duration
	dialer     *net.Dialer
	logger     *slog.Logger
	lineEnding ftpengine.LineEnding
	readSize   int

	// mu serializes calls; the engine handles are not safe for concurrent use
	mu sync.Mutex

	// tx is the handle for the next command; nil while a reply is awaited
	tx *ftpengine.Transmitter

	// broken holds the error that made the session unusable
	broken error
	closed bool
}

func newClient(options []Option) (*Client, error) {
	c := &Client{
		timeout:  30 * time.Second,
		dialer:   &net.Dialer{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		readSize: 4096,
	}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	c.dialer.Timeout = c.timeout
	return c, nil
}

// Dial connects to an FTP server at the given address and waits for its
// banner. The address should be in the form "host:port".
func Dial(addr string, options ...Option) (*Client, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	c, err := newClient(options)
	if err != nil {
		return nil, err
	}
	c.host = host

	conn, err := c.dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := c.start(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an established control connection and waits for the banner.
// The Client takes ownership of conn.
func New(conn net.Conn, options ...Option) (*Client, error) {
	c, err := newClient(options)
	if err != nil {
		return nil, err
	}
	if host, _, err := net.SplitHostPort(conn.RemoteAddr().String()); err == nil {
		c.host = host
	}
	if err := c.start(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) start(conn net.Conn) error {
	c.conn = withDeadlines(conn, c.timeout)

	rx, err := ftpengine.NewReceiver(
		ftpengine.WithLogger(c.logger),
		ftpengine.WithLineEnding(c.lineEnding),
	)
	if err != nil {
		return err
	}

	tx, err := c.await(rx)
	if err != nil {
		return fmt.Errorf("failed to read banner: %w", err)
	}
	c.tx = tx
	c.logger.Debug("connected", "remote", conn.RemoteAddr().String())
	return nil
}

// await reads from the control connection until rx holds a complete reply.
func (c *Client) await(rx *ftpengine.Receiver) (*ftpengine.Transmitter, error) {
	buf := make([]byte, c.readSize)
	var readErr error
	for {
		tx, err := rx.TryAdvance()
		switch {
		case err == nil:
			return tx, nil
		case !errors.Is(err, ftpengine.ErrNotEnoughData):
			return nil, err
		case readErr != nil:
			if errors.Is(readErr, io.EOF) {
				readErr = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("failed to read reply: %w", readErr)
		}

		var n int
		n, readErr = c.conn.Read(buf)
		if n > 0 {
			if err := rx.Feed(buf[:n]); err != nil {
				return nil, err
			}
		}
	}
}

// usable reports why no command can be sent, if anything prevents it.
func (c *Client) usable() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.broken != nil:
		return fmt.Errorf("%w: %w", ErrSessionBroken, c.broken)
	case c.tx == nil:
		return ErrSessionBroken
	}
	return nil
}

func (c *Client) fail(err error) {
	c.broken = err
	c.tx = nil
	c.logger.Debug("session broken", "error", err)
}

// send issues a command through the current Transmitter. Usage errors leave
// the session intact; a failed write breaks it.
func (c *Client) send(send func(*ftpengine.Transmitter, io.Writer) (*ftpengine.Receiver, error)) (*ftpengine.Receiver, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	rx, err := send(c.tx, c.conn)
	if err != nil {
		if !errors.Is(err, ftpengine.ErrUsage) {
			c.fail(err)
		}
		return nil, err
	}
	c.tx = nil
	return rx, nil
}

// receive waits for the reply to an outstanding command. An authentication
// failure keeps the session at the login prompt; any other failure breaks it.
func (c *Client) receive(rx *ftpengine.Receiver) error {
	tx, err := c.await(rx)
	if err == nil {
		c.tx = tx
		return nil
	}
	if errors.Is(err, ftpengine.ErrAuthFailed) {
		if tx, rerr := rx.Recover(); rerr == nil {
			c.tx = tx
			return err
		}
	}
	c.fail(err)
	return err
}

// exchange sends one command and waits for its reply.
func (c *Client) exchange(send func(*ftpengine.Transmitter, io.Writer) (*ftpengine.Receiver, error)) error {
	rx, err := c.send(send)
	if err != nil {
		return err
	}
	return c.receive(rx)
}

// Login authenticates with the server using USER and PASS.
// If the server rejects the credentials the returned error matches
// ftpengine.ErrAuthFailed and Login may be called again on the same Client.
func (c *Client) Login(username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.exchange(func(tx *ftpengine.Transmitter, w io.Writer) (*ftpengine.Receiver, error) {
		return tx.SendLogin(w, username)
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	err = c.exchange(func(tx *ftpengine.Transmitter, w io.Writer) (*ftpengine.Receiver, error) {
		return tx.SendPassword(w, password)
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	c.logger.Debug("logged in", "user", username)
	return nil
}

// CurrentDir returns the current working directory using PWD.
func (c *Client) CurrentDir() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.exchange((*ftpengine.Transmitter).SendPwdRequest); err != nil {
		return "", err
	}
	return c.tx.WorkingDirectory()
}

// SetType sets the representation type with TYPE I or TYPE T.
func (c *Client) SetType(mode ftpengine.DataMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.exchange(func(tx *ftpengine.Transmitter, w io.Writer) (*ftpengine.Receiver, error) {
		return tx.SendTypeRequest(w, mode)
	})
}

// System returns the server's system type using SYST.
func (c *Client) System() (ftpengine.SystemIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.exchange((*ftpengine.Transmitter).SendSystemRequest); err != nil {
		return ftpengine.SystemIdentity{}, err
	}
	return c.tx.SystemIdentity()
}

// List returns the entries of the current directory using PASV and LIST -l.
// Only Unix long listings are understood; other rows are skipped.
func (c *Client) List() ([]ftpengine.RemoteEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.exchange((*ftpengine.Transmitter).SendPasvRequest); err != nil {
		return nil, err
	}
	endpoint, err := c.tx.TakePassiveEndpoint()
	if err != nil {
		return nil, err
	}

	addr := resolveDataAddr(endpoint, c.host)
	c.logger.Debug("opening data connection", "addr", addr)
	dataConn, err := c.dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to data port: %w", err)
	}
	defer dataConn.Close()

	rx, err := c.send((*ftpengine.Transmitter).SendListRequest)
	if err != nil {
		return nil, err
	}

	n, err := io.Copy(dataSink{rx}, withDeadlines(dataConn, c.timeout))
	if err != nil {
		err = fmt.Errorf("failed to read listing: %w", err)
		c.fail(err)
		return nil, err
	}
	c.logger.Debug("listing received", "bytes", n)

	// 150
	if err := c.receive(rx); err != nil {
		return nil, err
	}
	if rx, err = c.tx.AwaitCompletion(); err != nil {
		return nil, err
	}
	c.tx = nil

	// 226
	if err := c.receive(rx); err != nil {
		return nil, err
	}
	return c.tx.TakeDirectoryListing()
}

// State returns the engine state of the session, or the zero State while the
// session is broken or closed.
func (c *Client) State() ftpengine.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tx.State()
}

// Close closes the control connection. It does not send QUIT.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.tx = nil
	return c.conn.Close()
}

// dataSink feeds everything written to it into the data buffer of rx.
type dataSink struct {
	rx *ftpengine.Receiver
}

func (d dataSink) Write(p []byte) (int, error) {
	if err := d.rx.FeedData(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// resolveDataAddr resolves the data connection address.
// If PASV announced 0.0.0.0, the control connection host is used instead.
func resolveDataAddr(endpoint netip.AddrPort, controlHost string) string {
	if endpoint.Addr().IsUnspecified() && controlHost != "" {
		return net.JoinHostPort(controlHost, strconv.Itoa(int(endpoint.Port())))
	}
	return endpoint.String()
}
