// Released under an MIT license. See LICENSE.

// Package launcher turns commands into running jobs.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/michaelmacinnis/tish/internal/common/diag"
	"github.com/michaelmacinnis/tish/internal/engine/command"
	"github.com/michaelmacinnis/tish/internal/system/job"
	"github.com/michaelmacinnis/tish/internal/system/process"
	"golang.org/x/sys/unix"
)

// NotFound is the status recorded for a command that could not be executed.
const NotFound = 127

// ErrNotFound is returned when neither the literal program name nor any
// PATH candidate could be executed.
var ErrNotFound = errors.New("command not found")

// CreationError is returned when the operating system could not create
// the process at all.
type CreationError struct {
	Path string
	Err  error
}

func (e *CreationError) Error() string {
	return "fork failed, program not called: " + e.Path + ": " + e.Err.Error()
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Spawned is the parent's view of a newly created job.
type Spawned struct {
	Job  *job.T
	Path string
}

// T (launcher) starts jobs, waiting on foreground jobs and registering
// background jobs.
type T struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	jobs  *job.Registry
	shell *job.Shell
}

// New creates a launcher that uses the shell's standard streams.
func New(s *job.Shell, r *job.Registry) *T {
	return &T{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		jobs:   r,
		shell:  s,
	}
}

// Launch runs c. A foreground command is waited for and its job returned
// once done. A background command is added to the registry and returned
// while still running.
func (l *T) Launch(c *command.T) (*job.T, error) {
	files, closer, err := l.files(c)
	if err != nil {
		return nil, err
	}

	foreground := !c.Background()

	attr := &os.ProcAttr{
		Files: files,
		Sys:   process.SysProcAttr(foreground && l.shell.Handoff(), l.shell.Terminal()),
	}

	s, err := Spawn(c.Name(), c.Argv(), attr, os.Getenv("PATH"))

	// The child has its own copies now.
	closer()

	if err != nil {
		// A child that failed to exec may already have taken the terminal.
		if foreground {
			l.shell.Reclaim()
		}

		return nil, err
	}

	j := s.Job

	diag.Trace("spawned %d from %s: %s", j.Pid(), s.Path, diag.Quote(c.Argv()))

	err = process.Join(j.Pid())
	if err != nil {
		diag.Trace("setpgid %d: %v", j.Pid(), err)
	}

	if !foreground {
		l.jobs.Add(j)

		return j, nil
	}

	l.shell.SetForeground(j)

	err = j.Wait()

	l.shell.ClearForeground()
	l.shell.Reclaim()

	return j, err
}

// Candidates lists the paths tried for name: the name as given, then
// name in each directory of the colon-separated path.
func Candidates(name, path string) []string {
	cs := []string{name}

	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			continue
		}

		cs = append(cs, dir+"/"+name)
	}

	return cs
}

// Spawn starts argv as a new process group, trying each candidate path
// for name in order until one executes.
func Spawn(name string, argv []string, attr *os.ProcAttr, path string) (Spawned, error) {
	if name == "" {
		return Spawned{}, fmt.Errorf("missing program name: %w", ErrNotFound)
	}

	for _, candidate := range Candidates(name, path) {
		p, err := os.StartProcess(candidate, argv, attr)
		if err == nil {
			pid := p.Pid

			// The job is reaped by pid.
			_ = p.Release()

			return Spawned{Job: job.New(pid), Path: candidate}, nil
		}

		if !unresolved(err) {
			return Spawned{}, &CreationError{Path: candidate, Err: err}
		}
	}

	return Spawned{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (l *T) files(c *command.T) ([]*os.File, func(), error) {
	files := []*os.File{l.Stdin, l.Stdout, l.Stderr}

	opened := []*os.File{}
	closer := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	if name := c.Output(); name != "" {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
		if err != nil {
			return nil, nil, err
		}

		opened = append(opened, f)
		files[1] = f
	}

	if name := c.Input(); name != "" {
		f, err := os.Open(name)
		if err != nil {
			closer()

			return nil, nil, err
		}

		opened = append(opened, f)
		files[0] = f
	}

	return files, closer, nil
}

// Errors from exec that mean "try the next candidate".
func unresolved(err error) bool {
	for _, errno := range []error{
		unix.EACCES, unix.EISDIR, unix.ELOOP, unix.ENAMETOOLONG,
		unix.ENOENT, unix.ENOEXEC, unix.ENOTDIR, unix.EPERM,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}
