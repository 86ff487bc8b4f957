// Command mintaka launches and supervises a declared set of long-running
// developer processes, each attached to its own PTY, inside one
// controlling terminal.
package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/mwilliamson/mintaka/internal/config"
	"github.com/mwilliamson/mintaka/internal/process"
	"github.com/mwilliamson/mintaka/internal/supervisor"
	"github.com/mwilliamson/mintaka/internal/ui"
	"github.com/sirupsen/logrus"
)

const (
	exitOK            = 0
	exitBadArgs       = 1
	exitConfigFailure = 2
)

type cliArgs struct {
	Config string `short:"c" long:"config" required:"true" description:"path to the mintaka TOML config file"`
}

func main() {
	os.Exit(run())
}

func run() int {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	var args cliArgs
	if _, err := flags.Parse(&args); err != nil {
		if flags.WroteHelp(err) {
			return exitOK
		}
		return exitBadArgs
	}

	specs, err := config.Load(args.Config)
	if err != nil {
		log.WithError(err).Error("failed to load config")
		return exitConfigFailure
	}

	baseDir, err := os.Getwd()
	if err != nil {
		log.WithError(err).Error("failed to resolve working directory")
		return exitConfigFailure
	}

	driver, err := ui.NewDriver(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start input driver:", err)
		return exitBadArgs
	}
	defer driver.Close()

	term, cols, rows, err := ui.OpenTerminal(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open controlling terminal:", err)
		return exitBadArgs
	}
	defer term.Close()

	sup := supervisor.New(specs, baseDir, process.Size{Cols: cols, Rows: rows}, driver.Wake, log.WithField("component", "supervisor"))

	exitCode, err := ui.Run(sup, term, driver, cols, rows)
	if err != nil {
		log.WithError(err).Error("mintaka exited with an error")
		return exitConfigFailure
	}
	return exitCode
}
