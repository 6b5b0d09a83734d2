package ftpengine

import (
	"fmt"
	"net/netip"
)

// StateKind identifies where a session is in its command/reply exchange.
type StateKind int

// Session states. The zero value is not a valid state; it marks a handle that
// no longer owns a session.
const (
	stateNone StateKind = iota

	NonAuthorized
	LoginReady
	LoginRequestSent
	PasswordExpected
	PasswordRequestSent
	Authorized

	PwdRequestSent
	PathReceived

	DataTypeRequestSent
	DataTypeConfirmed

	SystemRequestSent
	SystemReceived

	PassiveRequestSent
	PassiveConfirmed

	ListRequestSent
	DataTransferStarted
	DataTransferCompleted
)

var stateNames = map[StateKind]string{
	stateNone:             "none",
	NonAuthorized:         "non-authorized",
	LoginReady:            "login-ready",
	LoginRequestSent:      "login-request-sent",
	PasswordExpected:      "password-expected",
	PasswordRequestSent:   "password-request-sent",
	Authorized:            "authorized",
	PwdRequestSent:        "pwd-request-sent",
	PathReceived:          "path-received",
	DataTypeRequestSent:   "data-type-request-sent",
	DataTypeConfirmed:     "data-type-confirmed",
	SystemRequestSent:     "system-request-sent",
	SystemReceived:        "system-received",
	PassiveRequestSent:    "passive-request-sent",
	PassiveConfirmed:      "passive-confirmed",
	ListRequestSent:       "list-request-sent",
	DataTransferStarted:   "data-transfer-started",
	DataTransferCompleted: "data-transfer-completed",
}

// String returns the name of the state kind.
func (k StateKind) String() string {
	if name, ok := stateNames[k]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(k))
}

// DataMode is the representation type negotiated with TYPE.
type DataMode int

const (
	// Binary is image mode, TYPE I.
	Binary DataMode = iota + 1
	// Text is TYPE T.
	Text
)

// String returns a string representation of the DataMode.
func (m DataMode) String() string {
	switch m {
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// typeCode is the argument of the TYPE command for the mode.
func (m DataMode) typeCode() string {
	if m == Text {
		return "T"
	}
	return "I"
}

// SystemIdentity is the remote system type reported by SYST, e.g. UNIX / L8.
type SystemIdentity struct {
	Name    string
	Subtype string
}

// String returns "name/subtype".
func (s SystemIdentity) String() string {
	return s.Name + "/" + s.Subtype
}

// State is a session state. Only the payload fields that belong to Kind are
// set: Path for PathReceived, Mode for DataTypeRequestSent and
// DataTypeConfirmed, System for SystemReceived and Endpoint for
// PassiveConfirmed.
type State struct {
	Kind     StateKind
	Path     string
	Mode     DataMode
	System   SystemIdentity
	Endpoint netip.AddrPort
}

// Constructors for the states that carry data.

func pathReceived(path string) State {
	return State{Kind: PathReceived, Path: path}
}

func dataTypeRequestSent(mode DataMode) State {
	return State{Kind: DataTypeRequestSent, Mode: mode}
}

func dataTypeConfirmed(mode DataMode) State {
	return State{Kind: DataTypeConfirmed, Mode: mode}
}

func systemReceived(name, subtype string) State {
	return State{Kind: SystemReceived, System: SystemIdentity{Name: name, Subtype: subtype}}
}

func passiveConfirmed(endpoint netip.AddrPort) State {
	return State{Kind: PassiveConfirmed, Endpoint: endpoint}
}

// String returns the state name with its payload, if any.
func (s State) String() string {
	switch s.Kind {
	case PathReceived:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Path)
	case DataTypeRequestSent, DataTypeConfirmed:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Mode)
	case SystemReceived:
		return fmt.Sprintf("%s(%s)", s.Kind, s.System)
	case PassiveConfirmed:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Endpoint)
	default:
		return s.Kind.String()
	}
}

// transitions lists every legal move. Keys are the current kind, values the
// kinds it may move to; anything absent is rejected.
var transitions = map[StateKind]map[StateKind]bool{
	NonAuthorized:       {LoginReady: true},
	LoginRequestSent:    {PasswordExpected: true},
	PasswordExpected:    {PasswordRequestSent: true},
	PasswordRequestSent: {Authorized: true},
	PwdRequestSent:      {PathReceived: true},
	DataTypeRequestSent: {DataTypeConfirmed: true},
	SystemRequestSent:   {SystemReceived: true},
	PassiveRequestSent:  {PassiveConfirmed: true},
	ListRequestSent:     {DataTransferStarted: true},
	DataTransferStarted: {DataTransferCompleted: true},
}

// CanTransitionTo checks whether the state is allowed to move to next.
func (s State) CanTransitionTo(next State) bool {
	if m, ok := transitions[s.Kind]; ok {
		return m[next.Kind]
	}
	return false
}
