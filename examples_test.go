package ftpengine_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gonzalop/ftpengine"
)

// ExampleNewReceiver walks through a login exchange, feeding the server's
// bytes in the pieces a network read might return.
func ExampleNewReceiver() {
	rx, err := ftpengine.NewReceiver()
	if err != nil {
		panic(err)
	}

	_ = rx.Feed([]byte("220 Service "))
	if _, err := rx.TryAdvance(); errors.Is(err, ftpengine.ErrNotEnoughData) {
		fmt.Println("waiting for more bytes")
	}
	_ = rx.Feed([]byte("ready\r\n"))
	tx, err := rx.TryAdvance()
	if err != nil {
		panic(err)
	}
	fmt.Println(tx.State())

	var out bytes.Buffer
	rx, _ = tx.SendLogin(&out, "anonymous")
	fmt.Printf("%q\n", out.String())

	_ = rx.Feed([]byte("331 Please specify the password.\r\n"))
	tx, _ = rx.TryAdvance()
	fmt.Println(tx.State())

	// Output:
	// waiting for more bytes
	// login-ready
	// "USER anonymous\r\n"
	// password-expected
}

// ExampleTransmitter_TakePassiveEndpoint shows the endpoint announced by a
// 227 reply being taken once.
func ExampleTransmitter_TakePassiveEndpoint() {
	rx, _ := ftpengine.NewReceiver()
	var out bytes.Buffer

	_ = rx.Feed([]byte("220 Ready\r\n"))
	tx, _ := rx.TryAdvance()
	rx, _ = tx.SendLogin(&out, "anonymous")
	_ = rx.Feed([]byte("331 Password required\r\n"))
	tx, _ = rx.TryAdvance()
	rx, _ = tx.SendPassword(&out, "guest")
	_ = rx.Feed([]byte("230 Logged in\r\n"))
	tx, _ = rx.TryAdvance()

	rx, _ = tx.SendPasvRequest(&out)
	_ = rx.Feed([]byte("227 Entering Passive Mode (77,88,40,106,195,70).\r\n"))
	tx, _ = rx.TryAdvance()

	endpoint, _ := tx.TakePassiveEndpoint()
	fmt.Println(endpoint)
	_, err := tx.TakePassiveEndpoint()
	fmt.Println(errors.Is(err, ftpengine.ErrUsage))

	// Output:
	// 77.88.40.106:49990
	// true
}
