package main

import (
	"log"

	"github.com/gonzalop/ftpengine/internal/cli"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cli.RegisterFlags()

	if err := cli.Execute(Version); err != nil {
		log.Fatalf("%v", err)
	}
}
