// Released under an MIT license. See LICENSE.

// Package engine dispatches command lines to builtins or external programs.
package engine

import (
	"errors"
	"io"

	"github.com/michaelmacinnis/tish/internal/common/diag"
	"github.com/michaelmacinnis/tish/internal/engine/command"
	"github.com/michaelmacinnis/tish/internal/engine/commands"
	"github.com/michaelmacinnis/tish/internal/system/job"
	"github.com/michaelmacinnis/tish/internal/system/launcher"
)

type launch interface {
	Launch(c *command.T) (*job.T, error)
}

// T (engine) is the per-line driver.
type T struct {
	builtins *commands.T
	errors   io.Writer
	launcher launch
}

// New creates a dispatcher. Diagnostics are written to w.
func New(b *commands.T, l *launcher.T, w io.Writer) *T {
	return &T{
		builtins: b,
		errors:   w,
		launcher: l,
	}
}

// Evaluate runs the command line s and returns its status. A failed
// command never stops the shell.
func (e *T) Evaluate(s command.Sequence) int {
	if s.Len() == 0 {
		return 0
	}

	if fn, ok := e.builtins.Lookup(s.Get(0)); ok {
		return fn(s)
	}

	c := command.New(s)
	if c.Name() == "" {
		return 0
	}

	j, err := e.launcher.Launch(c)
	if err != nil {
		diag.Error(e.errors, err)

		if errors.Is(err, launcher.ErrNotFound) {
			return launcher.NotFound
		}

		return 1
	}

	if c.Background() {
		return 0
	}

	return j.Status()
}
