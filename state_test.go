package ftpengine

import (
	"net/netip"
	"testing"
)

var allKinds = []StateKind{
	NonAuthorized, LoginReady, LoginRequestSent, PasswordExpected, PasswordRequestSent,
	Authorized, PwdRequestSent, PathReceived, DataTypeRequestSent, DataTypeConfirmed,
	SystemRequestSent, SystemReceived, PassiveRequestSent, PassiveConfirmed,
	ListRequestSent, DataTransferStarted, DataTransferCompleted,
}

func TestStateKindString(t *testing.T) {
	t.Parallel()
	seen := make(map[string]StateKind)
	for _, kind := range allKinds {
		name := kind.String()
		if name == "" || name == "none" {
			t.Errorf("state %d has no name", int(kind))
		}
		if other, dup := seen[name]; dup {
			t.Errorf("states %d and %d share the name %q", int(kind), int(other), name)
		}
		seen[name] = kind
	}
	if got := StateKind(99).String(); got != "state(99)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		state State
		want  string
	}{
		{State{Kind: Authorized}, "authorized"},
		{pathReceived("/pub"), "path-received(/pub)"},
		{dataTypeRequestSent(Binary), "data-type-request-sent(binary)"},
		{dataTypeConfirmed(Text), "data-type-confirmed(text)"},
		{systemReceived("UNIX", "L8"), "system-received(UNIX/L8)"},
		{passiveConfirmed(netip.MustParseAddrPort("10.0.0.1:2121")), "passive-confirmed(10.0.0.1:2121)"},
		{State{}, "none"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStateValidTransitions(t *testing.T) {
	t.Parallel()
	valid := map[StateKind][]StateKind{
		NonAuthorized:       {LoginReady},
		LoginRequestSent:    {PasswordExpected},
		PasswordExpected:    {PasswordRequestSent},
		PasswordRequestSent: {Authorized},
		PwdRequestSent:      {PathReceived},
		DataTypeRequestSent: {DataTypeConfirmed},
		SystemRequestSent:   {SystemReceived},
		PassiveRequestSent:  {PassiveConfirmed},
		ListRequestSent:     {DataTransferStarted},
		DataTransferStarted: {DataTransferCompleted},
	}

	for _, from := range allKinds {
		allowed := make(map[StateKind]bool)
		for _, to := range valid[from] {
			allowed[to] = true
		}
		for _, to := range allKinds {
			got := State{Kind: from}.CanTransitionTo(State{Kind: to})
			if got != allowed[to] {
				t.Errorf("%s => %s: CanTransitionTo() = %v, want %v", from, to, got, allowed[to])
			}
		}
	}
}

func TestStateTransitionIgnoresPayload(t *testing.T) {
	t.Parallel()
	from := dataTypeRequestSent(Binary)
	if !from.CanTransitionTo(dataTypeConfirmed(Text)) {
		t.Error("payload should not take part in the transition check")
	}
	if !(State{Kind: PwdRequestSent}).CanTransitionTo(pathReceived("/")) {
		t.Error("pwd-request-sent => path-received should be allowed")
	}
}
