// Package ftpengine implements the client side of the FTP control channel as a
// transport-free protocol engine.
//
// # Overview
//
// The engine never reads or writes a socket. The caller feeds it whatever
// bytes arrived, asks it to advance, and writes the command bytes it produces.
// Reads may return partial or several replies at once; the engine buffers
// until a reply is complete and keeps what follows for the next one.
//
// The session is exposed through two handles:
//   - Receiver waits for a reply. It can Feed bytes and TryAdvance.
//   - Transmitter may issue the next command. Each command is legal from
//     exactly one state, writes its bytes, and returns a new Receiver.
//
// Every hand-off spends the old handle, so a second command cannot be sent
// before the first one is answered and a reply cannot be read without a
// command waiting for it.
//
// # Basic Usage
//
//	rx, _ := ftpengine.NewReceiver()
//	var out bytes.Buffer
//	buf := make([]byte, 4096)
//
//	readReply := func(rx *ftpengine.Receiver) (*ftpengine.Transmitter, error) {
//	    for {
//	        tx, err := rx.TryAdvance()
//	        if !errors.Is(err, ftpengine.ErrNotEnoughData) {
//	            return tx, err
//	        }
//	        n, err := conn.Read(buf)
//	        if err != nil {
//	            return nil, err
//	        }
//	        rx.Feed(buf[:n])
//	    }
//	}
//
//	tx, err := readReply(rx) // 220 banner
//	rx, err = tx.SendLogin(&out, "anonymous")
//	conn.Write(out.Bytes())
//	out.Reset()
//
// The client subpackage wraps this loop around a net.Conn.
//
// # Error Handling
//
// TryAdvance reports one of:
//   - ErrNotEnoughData: not a failure, feed more bytes.
//   - *AuthError: credentials were rejected; the session is back at
//     LoginReady and Receiver.Recover allows another SendLogin.
//   - *GarbageError: the bytes are not a reply the session understands.
//   - *ProtocolError: a valid reply that cannot follow the current state.
//
// Garbage and protocol errors end the session. Misuse by the caller, such as a
// command from the wrong state, is reported as *UsageError. Use errors.Is with
// ErrGarbageData, ErrProtocol, ErrAuthFailed and ErrUsage to tell them apart.
package ftpengine
