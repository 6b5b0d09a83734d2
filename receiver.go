package ftpengine

// Receiver is the handle of a session that is waiting for a reply. It can only
// take bytes in and try to advance; commands are issued from the Transmitter
// that a successful advance hands back.
//
// A Receiver is spent once it hands its session over. Calling any method on a
// spent Receiver returns a *UsageError.
type Receiver struct {
	s *session
}

// NewReceiver creates a session in the NonAuthorized state, waiting for the
// server banner.
func NewReceiver(options ...Option) (*Receiver, error) {
	c, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return &Receiver{s: newSession(c)}, nil
}

func (r *Receiver) owned(op string) (*session, error) {
	if r == nil || r.s == nil {
		return nil, &UsageError{Op: op, Reason: "receiver already handed off its session"}
	}
	return r.s, nil
}

// Feed appends bytes read from the control connection. It does not parse.
func (r *Receiver) Feed(p []byte) error {
	s, err := r.owned("Feed")
	if err != nil {
		return err
	}
	s.control = append(s.control, p...)
	return nil
}

// FeedData appends bytes read from the data connection. It is legal only
// while a listing is outstanding, that is after SendListRequest and before
// the transfer has been reported complete.
//
// Drain the data connection before advancing past the 226 reply: once
// TryAdvance has digested it the Receiver is spent, no more data can be fed,
// and TakeDirectoryListing parses only what was fed so far.
func (r *Receiver) FeedData(p []byte) error {
	s, err := r.owned("FeedData")
	if err != nil {
		return err
	}
	if s.state.Kind != ListRequestSent && s.state.Kind != DataTransferStarted {
		return &UsageError{Op: "FeedData", State: s.state, Reason: "no data transfer in progress"}
	}
	s.data = append(s.data, p...)
	return nil
}

// TryAdvance digests the next complete reply in the control buffer.
//
// On success the receiver is spent and a Transmitter for the new state is
// returned. Otherwise the result depends on the error:
//
//   - ErrNotEnoughData: nothing changed; feed more bytes and try again.
//   - *AuthError: the session was moved back to LoginReady; call Recover to
//     resend credentials on the same connection.
//   - *GarbageError, *ProtocolError: the session is unusable and the receiver
//     is spent.
func (r *Receiver) TryAdvance() (*Transmitter, error) {
	s, err := r.owned("TryAdvance")
	if err != nil {
		return nil, err
	}

	err = s.advance()
	switch {
	case err == nil:
		r.s = nil
		return &Transmitter{s: s}, nil
	case IsFatal(err):
		s.logger.Debug("session aborted", "state", s.state.String(), "error", err)
		r.s = nil
		return nil, err
	default:
		return nil, err
	}
}

// Recover hands the session to a Transmitter after an authentication failure
// so that SendLogin can be issued again.
func (r *Receiver) Recover() (*Transmitter, error) {
	s, err := r.owned("Recover")
	if err != nil {
		return nil, err
	}
	if s.state.Kind != LoginReady {
		return nil, &UsageError{Op: "Recover", State: s.state, Reason: "no authentication failure to recover from"}
	}
	r.s = nil
	return &Transmitter{s: s}, nil
}

// State returns the current session state, or the zero State if the receiver
// is spent.
func (r *Receiver) State() State {
	if r == nil || r.s == nil {
		return State{}
	}
	return r.s.state
}

// Buffered returns the number of control bytes fed but not yet digested.
func (r *Receiver) Buffered() int {
	if r == nil || r.s == nil {
		return 0
	}
	return len(r.s.control)
}
