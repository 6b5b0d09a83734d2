package ftpengine

import (
	"fmt"
	"io"
	"net/netip"
	"strings"
)

// Transmitter is the handle of a session that may issue its next command.
// Every Send method writes the command to w, spends the Transmitter and
// returns the Receiver that waits for the reply, so a second command cannot
// be issued before the first one is answered.
//
// Each command is legal from a single state. Calling it from another state,
// or on a spent Transmitter, returns a *UsageError and changes nothing.
type Transmitter struct {
	s *session
}

func (t *Transmitter) owned(op string) (*session, error) {
	if t == nil || t.s == nil {
		return nil, &UsageError{Op: op, Reason: "transmitter already handed off its session"}
	}
	return t.s, nil
}

// send writes "command args...\r\n" to w and moves the session to sent.
// If the write fails the Transmitter stays usable and the session unchanged.
func (t *Transmitter) send(op string, w io.Writer, from StateKind, sent State, command string, args ...string) (*Receiver, error) {
	s, err := t.owned(op)
	if err != nil {
		return nil, err
	}
	if s.state.Kind != from {
		return nil, &UsageError{Op: op, State: s.state, Reason: fmt.Sprintf("only allowed in %s", from)}
	}
	for _, arg := range args {
		if strings.ContainsAny(arg, "\r\n") {
			return nil, &UsageError{Op: op, State: s.state, Reason: "argument contains a line break"}
		}
	}

	line := command
	if len(args) > 0 {
		line = command + " " + strings.Join(args, " ")
	}
	if _, err := io.WriteString(w, line+s.terminator); err != nil {
		return nil, fmt.Errorf("ftp: failed to write %s command: %w", command, err)
	}

	if command == "PASS" {
		s.logger.Debug("ftp command", "cmd", "PASS ****")
	} else {
		s.logger.Debug("ftp command", "cmd", line)
	}

	s.setState(sent)
	s.lastSent = sent
	t.s = nil
	return &Receiver{s: s}, nil
}

// SendLogin writes "USER <username>". Legal in LoginReady.
func (t *Transmitter) SendLogin(w io.Writer, username string) (*Receiver, error) {
	return t.send("SendLogin", w, LoginReady, State{Kind: LoginRequestSent}, "USER", username)
}

// SendPassword writes "PASS <password>". Legal in PasswordExpected.
func (t *Transmitter) SendPassword(w io.Writer, password string) (*Receiver, error) {
	return t.send("SendPassword", w, PasswordExpected, State{Kind: PasswordRequestSent}, "PASS", password)
}

// SendPwdRequest writes "PWD". Legal in Authorized.
func (t *Transmitter) SendPwdRequest(w io.Writer) (*Receiver, error) {
	return t.send("SendPwdRequest", w, Authorized, State{Kind: PwdRequestSent}, "PWD")
}

// SendTypeRequest writes "TYPE I" or "TYPE T". Legal in Authorized.
func (t *Transmitter) SendTypeRequest(w io.Writer, mode DataMode) (*Receiver, error) {
	if mode != Binary && mode != Text {
		s, err := t.owned("SendTypeRequest")
		if err != nil {
			return nil, err
		}
		return nil, &UsageError{Op: "SendTypeRequest", State: s.state, Reason: fmt.Sprintf("invalid data mode %d", int(mode))}
	}
	return t.send("SendTypeRequest", w, Authorized, dataTypeRequestSent(mode), "TYPE", mode.typeCode())
}

// SendSystemRequest writes "SYST". Legal in Authorized.
func (t *Transmitter) SendSystemRequest(w io.Writer) (*Receiver, error) {
	return t.send("SendSystemRequest", w, Authorized, State{Kind: SystemRequestSent}, "SYST")
}

// SendPasvRequest writes "PASV". Legal in Authorized.
func (t *Transmitter) SendPasvRequest(w io.Writer) (*Receiver, error) {
	return t.send("SendPasvRequest", w, Authorized, State{Kind: PassiveRequestSent}, "PASV")
}

// SendListRequest writes "LIST -l". Legal in Authorized. The listing itself
// arrives on the data connection and is fed with FeedData.
func (t *Transmitter) SendListRequest(w io.Writer) (*Receiver, error) {
	return t.send("SendListRequest", w, Authorized, State{Kind: ListRequestSent}, "LIST", "-l")
}

// AwaitCompletion hands the session back to a Receiver after the server has
// opened the data connection, so that the closing reply can be read. Nothing
// is written. Legal in DataTransferStarted.
func (t *Transmitter) AwaitCompletion() (*Receiver, error) {
	s, err := t.owned("AwaitCompletion")
	if err != nil {
		return nil, err
	}
	if s.state.Kind != DataTransferStarted {
		return nil, &UsageError{Op: "AwaitCompletion", State: s.state, Reason: fmt.Sprintf("only allowed in %s", DataTransferStarted)}
	}
	t.s = nil
	return &Receiver{s: s}, nil
}

// WorkingDirectory returns the directory reported by the last PWD.
func (t *Transmitter) WorkingDirectory() (string, error) {
	s, err := t.owned("WorkingDirectory")
	if err != nil {
		return "", err
	}
	if !s.hasWorkingDir {
		return "", &UsageError{Op: "WorkingDirectory", State: s.state, Reason: "no PWD reply received yet"}
	}
	return s.workingDir, nil
}

// DataMode returns the data mode confirmed by the last TYPE.
func (t *Transmitter) DataMode() (DataMode, error) {
	s, err := t.owned("DataMode")
	if err != nil {
		return 0, err
	}
	if s.mode == 0 {
		return 0, &UsageError{Op: "DataMode", State: s.state, Reason: "no TYPE reply received yet"}
	}
	return s.mode, nil
}

// SystemIdentity returns the system type reported by SYST.
func (t *Transmitter) SystemIdentity() (SystemIdentity, error) {
	s, err := t.owned("SystemIdentity")
	if err != nil {
		return SystemIdentity{}, err
	}
	if !s.hasSystem {
		return SystemIdentity{}, &UsageError{Op: "SystemIdentity", State: s.state, Reason: "no SYST reply received yet"}
	}
	return s.system, nil
}

// TakePassiveEndpoint returns the endpoint announced by the last PASV and
// forgets it, so that one endpoint serves one data connection.
func (t *Transmitter) TakePassiveEndpoint() (netip.AddrPort, error) {
	s, err := t.owned("TakePassiveEndpoint")
	if err != nil {
		return netip.AddrPort{}, err
	}
	if !s.endpoint.IsValid() {
		return netip.AddrPort{}, &UsageError{Op: "TakePassiveEndpoint", State: s.state, Reason: "no passive endpoint available"}
	}
	endpoint := s.endpoint
	s.endpoint = netip.AddrPort{}
	return endpoint, nil
}

// TakeDirectoryListing parses the data received for the completed LIST,
// clears it and returns the session to Authorized. Legal in
// DataTransferCompleted.
func (t *Transmitter) TakeDirectoryListing() ([]RemoteEntry, error) {
	s, err := t.owned("TakeDirectoryListing")
	if err != nil {
		return nil, err
	}
	if s.state.Kind != DataTransferCompleted {
		return nil, &UsageError{Op: "TakeDirectoryListing", State: s.state, Reason: "no completed listing"}
	}

	entries, err := parseListing(s.data, s.logger)
	s.data = nil
	s.setState(State{Kind: Authorized})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// State returns the current session state, or the zero State if the
// transmitter is spent.
func (t *Transmitter) State() State {
	if t == nil || t.s == nil {
		return State{}
	}
	return t.s.state
}
