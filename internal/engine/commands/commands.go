// Released under an MIT license. See LICENSE.

// Package commands provides the shell's builtin commands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/michaelmacinnis/tish/internal/engine/command"
	"github.com/michaelmacinnis/tish/internal/system/job"
)

// Builtin is a named command implemented by the shell itself.
type Builtin struct {
	Name string
	Doc  string
	Fn   func(s command.Sequence) int
}

// T (commands) is the fixed table of builtins.
type T struct {
	exit  func(int)
	jobs  *job.Registry
	out   io.Writer
	table []Builtin
}

// New creates the builtin table. Output goes to w. The exit builtin calls
// exit, which must not return.
func New(w io.Writer, r *job.Registry, exit func(int)) *T {
	t := &T{
		exit: exit,
		jobs: r,
		out:  w,
	}

	t.table = []Builtin{
		{"?", "show this help menu", t.help},
		{"exit", "exit the command shell", t.quit},
		{"cd", "changes the current working directory", cd},
		{"pwd", "shows the current working directory", t.pwd},
		{"wait", "waits for all background jobs to terminate", t.wait},
		{"jobs", "lists background jobs not yet waited for", t.list},
	}

	return t
}

// Builtins returns the table in display order.
func (t *T) Builtins() []Builtin {
	bs := make([]Builtin, len(t.table))
	copy(bs, t.table)

	return bs
}

// Lookup returns the handler for the builtin called name.
func (t *T) Lookup(name string) (func(s command.Sequence) int, bool) {
	for _, b := range t.table {
		if b.Name == name {
			return b.Fn, true
		}
	}

	return nil, false
}

func cd(s command.Sequence) int {
	if s.Len() < 2 {
		return 1
	}

	dir := s.Get(1)

	oldwd, err := os.Getwd()
	if err != nil {
		oldwd = os.Getenv("PWD")
	}

	err = os.Chdir(dir)
	if err != nil {
		return 1
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(oldwd, dir)
	}

	// Getwd prefers $PWD when it names the current directory, which
	// keeps symbolic links the user typed.
	_ = os.Setenv("OLDPWD", oldwd)
	_ = os.Setenv("PWD", filepath.Clean(dir))

	return 0
}

func (t *T) help(_ command.Sequence) int {
	for _, b := range t.table {
		fmt.Fprintf(t.out, "%s - %s\n", b.Name, b.Doc)
	}

	return 1
}

func (t *T) list(_ command.Sequence) int {
	for i, j := range t.jobs.Jobs() {
		j.Poll()

		fmt.Fprintf(t.out, "[%d]\t%d\t%s\n", i+1, j.Pid(), j.State())
	}

	return 0
}

func (t *T) pwd(_ command.Sequence) int {
	wd, err := os.Getwd()
	if err != nil {
		return 1
	}

	fmt.Fprintln(t.out, wd)

	return 0
}

func (t *T) quit(_ command.Sequence) int {
	t.exit(0)

	return 0
}

func (t *T) wait(_ command.Sequence) int {
	t.jobs.ReapAll()

	return 0
}
