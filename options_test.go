package ftpengine

import (
	"errors"
	"testing"
)

func TestParseLineEnding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    LineEnding
		wantErr bool
	}{
		{input: "", want: CRLF},
		{input: "crlf", want: CRLF},
		{input: "CRLF", want: CRLF},
		{input: " lf ", want: LF},
		{input: "cr", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLineEnding(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLineEnding(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLineEnding(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLineEndingString(t *testing.T) {
	t.Parallel()
	if CRLF.String() != "crlf" || LF.String() != "lf" {
		t.Errorf("String() = %q, %q", CRLF, LF)
	}
}

func TestOptions_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		option Option
	}{
		{name: "nil logger", option: WithLogger(nil)},
		{name: "unknown line ending", option: WithLineEnding(LineEnding(3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, err := NewReceiver(tt.option)
			if err == nil || rx != nil {
				t.Errorf("NewReceiver() = %v, %v; want error", rx, err)
			}
		})
	}
}

func TestNewReceiver_Defaults(t *testing.T) {
	t.Parallel()
	rx, err := NewReceiver()
	if err != nil {
		t.Fatalf("NewReceiver() error = %v", err)
	}
	if rx.State().Kind != NonAuthorized {
		t.Errorf("state = %s, want %s", rx.State(), NonAuthorized)
	}
	if rx.Buffered() != 0 {
		t.Errorf("buffered = %d, want 0", rx.Buffered())
	}
	if rx.s.terminator != "\r\n" {
		t.Errorf("terminator = %q, want CRLF", rx.s.terminator)
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNotEnoughData, false},
		{&AuthError{Code: 530, Response: "Login incorrect."}, false},
		{&UsageError{Op: "SendPwdRequest", Reason: "only allowed in authorized"}, false},
		{&GarbageError{Reason: "reply line", Line: "hello"}, true},
		{&ProtocolError{From: State{Kind: LoginRequestSent}, To: State{Kind: Authorized}, Code: 230}, true},
		{errors.New("broken pipe"), false},
	}

	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want string
	}{
		{
			err:  &GarbageError{Reason: "pathname"},
			want: "ftp: garbage data: pathname",
		},
		{
			err:  &GarbageError{Reason: "reply line", Line: "hello"},
			want: `ftp: garbage data: reply line: "hello"`,
		},
		{
			err:  &AuthError{Code: 530, Response: "Login incorrect."},
			want: "ftp: authentication failed: Login incorrect. (code 530)",
		},
		{
			err:  &UsageError{Op: "Feed", Reason: "receiver already handed off its session"},
			want: "ftp: Feed: receiver already handed off its session (in none)",
		},
		{
			err:  &ProtocolError{From: State{Kind: NonAuthorized}, To: State{Kind: PasswordExpected}, Code: 331, Response: "Password required"},
			want: "ftp: transition non-authorized => password-expected is not allowed: Password required (code 331)",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
