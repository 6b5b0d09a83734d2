package ftpengine

// Reply codes understood by the session.
const (
	codeOpeningDataConn = 150
	codeCommandOK       = 200
	codeSystemType      = 215
	codeServiceReady    = 220
	codeClosingDataConn = 226
	codePassiveMode     = 227
	codeLoggedIn        = 230
	codePathname        = 257
	codeNeedPassword    = 331
	codeNotLoggedIn     = 530
)

// candidateState maps a reply to the state it announces. The 200 reply only
// confirms a TYPE request, so it is judged against the last command sent.
func candidateState(r *reply, lastSent State) (State, error) {
	switch r.Code {
	case codeServiceReady:
		return State{Kind: LoginReady}, nil
	case codeNeedPassword:
		return State{Kind: PasswordExpected}, nil
	case codeLoggedIn:
		return State{Kind: Authorized}, nil
	case codeOpeningDataConn:
		return State{Kind: DataTransferStarted}, nil
	case codeClosingDataConn:
		return State{Kind: DataTransferCompleted}, nil
	case codeNotLoggedIn:
		return State{}, &AuthError{Code: r.Code, Response: r.Message}
	case codeCommandOK:
		if lastSent.Kind != DataTypeRequestSent {
			return State{}, &GarbageError{Reason: "200 reply without a pending TYPE request", Line: r.Message}
		}
		return dataTypeConfirmed(lastSent.Mode), nil
	case codePathname:
		path, err := parsePathname(r.Message)
		if err != nil {
			return State{}, err
		}
		return pathReceived(path), nil
	case codeSystemType:
		system, err := parseSystem(r.Message)
		if err != nil {
			return State{}, err
		}
		return systemReceived(system.Name, system.Subtype), nil
	case codePassiveMode:
		endpoint, err := parsePASV(r.Message)
		if err != nil {
			return State{}, err
		}
		return passiveConfirmed(endpoint), nil
	default:
		return State{}, &GarbageError{Reason: "unsupported reply code", Line: r.String()}
	}
}
