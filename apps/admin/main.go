package main

import (
	"fmt"
	"os"

	"github.com/trezcool/campus/apps/shared"
	"github.com/trezcool/campus/core"
)

func main() {
	conf := core.NewConfig()

	logger := shared.NewLogger(conf, "admin")

	backend, err := shared.NewBackend(conf, logger)
	if err != nil {
		logger.Fatal("setting up backend", err)
	}

	// start CLI
	cli := commandLine{
		backend: backend,
		logger:  logger,
		out:     os.Stdout,
	}
	err = cli.run(os.Args)
	logger.Close()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", core.Message(err))
		}
		os.Exit(1)
	}
}
