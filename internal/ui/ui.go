// Released under an MIT license. See LICENSE.

// Package ui reads command lines and hands them to an Evaluator.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/michaelmacinnis/tish/internal/common/diag"
	"github.com/michaelmacinnis/tish/internal/engine/command"
	"github.com/michaelmacinnis/tish/internal/reader/lexer"
	"github.com/michaelmacinnis/tish/internal/system/cache"
	"github.com/peterh/liner"
)

// Evaluator is the interface for things that want to process command lines.
type Evaluator interface {
	Evaluate(s command.Sequence) int
}

// T (ui) is a source of command lines.
type T struct {
	cli      *liner.State
	cooked   liner.ModeApplier
	count    int
	errors   io.Writer
	lines    *bufio.Reader
	uncooked liner.ModeApplier
}

// Completer completes the program name at the start of a line from the
// builtin names and the executables in PATH.
func Completer(builtins []string, c *cache.T) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		r := []rune(line)
		head, tail := string(r[:pos]), string(r[pos:])

		if strings.ContainsAny(head, " \t") {
			return head, nil, tail
		}

		cs := []string{}
		for _, b := range builtins {
			if strings.HasPrefix(b, head) {
				cs = append(cs, b)
			}
		}

		cs = append(cs, c.Programs(head, os.Getenv("PATH"))...)

		return "", cs, tail
	}
}

// Interactive creates a line editor on the terminal. A "<n>: " prompt is
// printed before every line.
func Interactive(w io.Writer, complete liner.WordCompleter) (*T, error) {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return nil, err
	}

	cli := liner.NewLiner()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		_ = cli.Close()

		return nil, err
	}

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(complete)

	// NewLiner leaves the terminal raw. Commands expect it cooked.
	err = cooked.ApplyMode()
	if err != nil {
		_ = cli.Close()

		return nil, err
	}

	return &T{
		cli:      cli,
		cooked:   cooked,
		errors:   w,
		uncooked: uncooked,
	}, nil
}

// New creates a prompt-less source reading lines from r.
func New(r io.Reader, w io.Writer) *T {
	return &T{
		errors: w,
		lines:  bufio.NewReader(r),
	}
}

// Close releases the terminal.
func (u *T) Close() error {
	if u.cli == nil {
		return nil
	}

	err := u.cli.Close()
	u.cli = nil

	return err
}

// Run reads lines until the input is exhausted, evaluating each one.
func (u *T) Run(e Evaluator) {
	for {
		line, err := u.read()
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if line != "" {
			u.evaluate(e, line)
		}

		if err != nil {
			if u.cli != nil {
				_, _ = os.Stdout.Write([]byte("exit\n"))
			}

			return
		}

		u.count++
	}
}

func (u *T) evaluate(e Evaluator, line string) {
	s, err := lexer.Tokenize(line)
	if err != nil {
		diag.Error(u.errors, err)

		return
	}

	e.Evaluate(s)
}

// The prompt counts every line read, empty or not, starting at 0.
func (u *T) prompt() string {
	return fmt.Sprintf("%d: ", u.count)
}

func (u *T) read() (string, error) {
	if u.cli == nil {
		line, err := u.lines.ReadString('\n')

		return strings.TrimRight(line, "\r\n"), err
	}

	err := u.uncooked.ApplyMode()
	if err != nil {
		return "", err
	}

	line, err := u.cli.Prompt(u.prompt())

	merr := u.cooked.ApplyMode()
	if err == nil {
		err = merr
	}

	return line, err
}
