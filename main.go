/*
Tish is a tiny interactive shell with job control. It runs one command
per line:

	pwd
	cd /tmp
	echo hi > out.txt
	cat < out.txt
	sleep 5 &
	wait

Each external command runs in its own process group. An interrupt
received while a command is running is forwarded to that command's
group and never terminates the shell.

Tish is released under an MIT-style license.
*/
package main

import (
	"os"
	"strings"

	"github.com/michaelmacinnis/tish/internal/common/diag"
	"github.com/michaelmacinnis/tish/internal/engine"
	"github.com/michaelmacinnis/tish/internal/engine/commands"
	"github.com/michaelmacinnis/tish/internal/system/cache"
	"github.com/michaelmacinnis/tish/internal/system/job"
	"github.com/michaelmacinnis/tish/internal/system/launcher"
	"github.com/michaelmacinnis/tish/internal/system/options"
	"github.com/michaelmacinnis/tish/internal/ui"
)

func main() {
	err := options.Parse()
	if err != nil {
		diag.Error(os.Stderr, err)
		os.Exit(1)
	}

	diag.Configure(options.Debug())

	shell := job.NewShell(options.Interactive(), options.Monitor())

	err = shell.Initialize()
	if err != nil {
		diag.Error(os.Stderr, err)
		diag.Flush()
		os.Exit(1)
	}

	shell.Notify()

	var u *ui.T

	exit := func(code int) {
		if u != nil {
			_ = u.Close()
		}

		shell.Stop()
		diag.Flush()
		os.Exit(code)
	}

	jobs := job.NewRegistry()
	builtins := commands.New(os.Stdout, jobs, exit)
	e := engine.New(builtins, launcher.New(shell, jobs), os.Stderr)

	u, err = source(builtins)
	if err != nil {
		diag.Error(os.Stderr, err)
		exit(1)
	}

	u.Run(e)

	exit(0)
}

func source(builtins *commands.T) (*ui.T, error) {
	if c := options.Command(); c != "" {
		return ui.New(strings.NewReader(c+"\n"), os.Stderr), nil
	}

	if path := options.Script(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		return ui.New(f, os.Stderr), nil
	}

	if options.Interactive() {
		names := []string{}
		for _, b := range builtins.Builtins() {
			names = append(names, b.Name)
		}

		return ui.Interactive(os.Stderr, ui.Completer(names, cache.New()))
	}

	return ui.New(os.Stdin, os.Stderr), nil
}
