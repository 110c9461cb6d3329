// Released under an MIT license. See LICENSE.

// Package options parses tish's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by --version.
const Version = "tish 0.1.0"

//nolint:gochecknoglobals
var (
	command     string
	debug       bool
	interactive bool
	monitor     bool
	script      string
	usage       = `tish

Usage:
  tish [-dm] [SCRIPT]
  tish [-dm] -c COMMAND
  tish -h
  tish -v

Arguments:
  SCRIPT  Path to a file of commands, one per line.

Options:
  -c, --command=COMMAND  Run the specified command.
  -d, --debug            Log job control activity.
  -m, --monitor          Invert job control mode.
  -h, --help             Display this help.
  -v, --version          Print tish version.

If tish's stdin is a TTY, and tish was invoked with no operands, interactive
and job control features are enabled. Otherwise, these features are disabled.
`
)

// Command returns the command given with -c.
func Command() string {
	return command
}

// Debug reports whether job control tracing is enabled.
func Debug() bool {
	return debug
}

// Interactive reports whether tish reads commands from a terminal.
func Interactive() bool {
	return interactive
}

// Monitor reports whether job control (terminal hand-off) is enabled.
func Monitor() bool {
	return monitor
}

// Parse parses os.Args. It exits after printing help or the version.
func Parse() error {
	return parse(os.Args[1:], isatty.IsTerminal(os.Stdin.Fd()))
}

// Script returns the path of the script to run.
func Script() string {
	return script
}

func parse(argv []string, tty bool) error {
	// docopt reads os.Args when argv is nil.
	if argv == nil {
		argv = []string{}
	}

	opts, err := docopt.ParseArgs(usage, argv, Version)
	if err != nil {
		return err
	}

	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")

	interactive = tty && command == "" && script == ""
	monitor = interactive

	debug, _ = opts.Bool("--debug")

	invertMonitor, _ := opts.Bool("--monitor")
	monitor = monitor != invertMonitor

	return nil
}
