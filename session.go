package ftpengine

import (
	"errors"
	"log/slog"
	"net/netip"
)

// session is the context shared by the Receiver and Transmitter handles.
// Exactly one handle owns it at any time.
type session struct {
	state State

	// lastSent is the request state recorded by the most recent command.
	// It gives meaning to the 200 reply.
	lastSent State

	workingDir    string
	hasWorkingDir bool
	mode          DataMode
	system        SystemIdentity
	hasSystem     bool
	endpoint      netip.AddrPort

	// control holds undigested control-channel bytes
	control []byte

	// data holds the payload of the transfer in flight
	data []byte

	logger     *slog.Logger
	terminator string
}

func newSession(c *config) *session {
	return &session{
		state:      State{Kind: NonAuthorized},
		logger:     c.logger,
		terminator: c.lineEnding.terminator(),
	}
}

// advance tries to digest one reply from the control buffer. On any error
// other than an authentication failure the session is left as it was; a 530
// reply sends the session back to LoginReady from whatever state it was in.
func (s *session) advance() error {
	r, n, err := parseReply(s.control)
	if err != nil {
		return err
	}
	s.logger.Debug("ftp reply", "code", r.Code, "message", r.Message, "lines", len(r.Lines))

	next, err := candidateState(r, s.lastSent)
	if err != nil {
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			return err
		}
		s.consume(n)
		s.lastSent = State{}
		s.data = nil
		s.setState(State{Kind: LoginReady})
		return err
	}

	if !s.state.CanTransitionTo(next) {
		return &ProtocolError{From: s.state, To: next, Code: r.Code, Response: r.Message}
	}

	s.consume(n)
	s.lastSent = State{}
	s.fold(next)
	return nil
}

// fold copies the payload of a data-carrying state into the session and
// collapses it to Authorized. Other states become current as they are.
func (s *session) fold(next State) {
	s.setState(next)
	switch next.Kind {
	case PathReceived:
		s.workingDir = next.Path
		s.hasWorkingDir = true
	case DataTypeConfirmed:
		s.mode = next.Mode
	case SystemReceived:
		s.system = next.System
		s.hasSystem = true
	case PassiveConfirmed:
		s.endpoint = next.Endpoint
	default:
		return
	}
	s.setState(State{Kind: Authorized})
}

func (s *session) setState(next State) {
	s.logger.Debug("state transition", "from", s.state.String(), "to", next.String())
	s.state = next
}

func (s *session) consume(n int) {
	s.control = append(s.control[:0], s.control[n:]...)
}
