package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "replicationworker: %+v\n", err)
		return 1
	}
	return 0
}
