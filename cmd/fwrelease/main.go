package main

import (
	"os"

	"github.com/liftblock/fwrelease/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCodeFor(err))
	}
}
