package main

import (
	"os"

	"github.com/Makepad-fr/todo/internal/cli"
)

var version = "dev"

func main() {
	// Every path through Execute, success or failure, has already saved
	// the list (or never loaded it) by the time it returns.
	os.Exit(cli.Execute(os.Args[1:], cli.StdStreams(), version))
}
