package main

import (
	"fmt"
	"os"

	"github.com/example/dispatch/internal/cli"
	"github.com/example/dispatch/internal/wire"
)

func main() {
	err := cli.RootCmd().Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
