package ftpengine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughData reports that the control buffer does not hold a complete
	// reply yet. It is not a failure: feed more bytes and call TryAdvance again.
	ErrNotEnoughData = errors.New("ftp: not enough data")

	// ErrGarbageData is matched by every *GarbageError.
	ErrGarbageData = errors.New("ftp: garbage data")

	// ErrProtocol is matched by every *ProtocolError.
	ErrProtocol = errors.New("ftp: protocol error")

	// ErrAuthFailed is matched by every *AuthError.
	ErrAuthFailed = errors.New("ftp: authentication failed")

	// ErrUsage is matched by every *UsageError.
	ErrUsage = errors.New("ftp: usage error")
)

// GarbageError reports bytes or reply text that cannot be decoded under any
// grammar the session currently accepts. The session is not advanced.
type GarbageError struct {
	// Reason says which grammar rejected the input (e.g., "reply line", "pathname")
	Reason string

	// Line is the offending line or reply text, if one was isolated
	Line string
}

// Error implements the error interface.
func (e *GarbageError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("ftp: garbage data: %s", e.Reason)
	}
	return fmt.Sprintf("ftp: garbage data: %s: %q", e.Reason, e.Line)
}

// Is reports whether target is ErrGarbageData.
func (e *GarbageError) Is(target error) bool {
	return target == ErrGarbageData
}

// ProtocolError represents a well-formed reply that is not a legal successor
// of the state the session was in when it arrived. It is fatal: the server and
// the client no longer agree on where the conversation is.
type ProtocolError struct {
	// From is the state the session was in when the reply arrived
	From State

	// To is the state the reply would have moved the session to
	To State

	// Code is the numeric FTP reply code (e.g., 227)
	Code int

	// Response is the text of the terminal reply line
	Response string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ftp: transition %s => %s is not allowed: %s (code %d)", e.From, e.To, e.Response, e.Code)
}

// Is reports whether target is ErrProtocol.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

// Is2xx returns true if the reply code is in the 2xx range (success).
func (e *ProtocolError) Is2xx() bool {
	return e.Code >= 200 && e.Code < 300
}

// Is3xx returns true if the reply code is in the 3xx range (intermediate).
func (e *ProtocolError) Is3xx() bool {
	return e.Code >= 300 && e.Code < 400
}

// Is4xx returns true if the reply code is in the 4xx range (temporary failure).
func (e *ProtocolError) Is4xx() bool {
	return e.Code >= 400 && e.Code < 500
}

// Is5xx returns true if the reply code is in the 5xx range (permanent failure).
func (e *ProtocolError) Is5xx() bool {
	return e.Code >= 500 && e.Code < 600
}

// AuthError is returned for a 530 reply, whether it rejects credentials or
// says a login is required. Unlike every other failure it leaves the session
// usable: the Receiver that reported it has been moved back to LoginReady and
// Recover hands out a Transmitter for a new USER command.
type AuthError struct {
	Code     int
	Response string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("ftp: authentication failed: %s (code %d)", e.Response, e.Code)
}

// Is reports whether target is ErrAuthFailed.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthFailed
}

// UsageError reports a contract violation by the caller: a command issued from
// the wrong state, a handle reused after it was handed off, a fact read before
// it was learned, or an argument that cannot be put on the wire. It never
// originates from the remote peer.
type UsageError struct {
	// Op is the method that was misused (e.g., "SendLogin")
	Op string

	// State is the state the session was in, zero if the handle was already spent
	State State

	// Reason describes the violation
	Reason string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("ftp: %s: %s (in %s)", e.Op, e.Reason, e.State)
}

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// IsFatal reports whether err leaves the session unusable. Not-enough-data,
// authentication failures and usage errors are recoverable; garbage and
// protocol errors are not.
func IsFatal(err error) bool {
	return errors.Is(err, ErrGarbageData) || errors.Is(err, ErrProtocol)
}
