// Released under an MIT license. See LICENSE.

// Package job tracks the processes launched by the shell.
package job

import (
	"github.com/michaelmacinnis/tish/internal/common/diag"
	"golang.org/x/sys/unix"
)

// State is the life cycle stage of a job.
type State int

// A job is Running until it has been reaped.
const (
	Running State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "Done"
	}

	return "Running"
}

// T (job) is a spawned process that leads its own process group.
type T struct {
	pid    int
	state  State
	status int
}

// New creates a running job for the process pid.
func New(pid int) *T {
	return &T{pid: pid}
}

// Group returns the job's process group ID. It is always the job's pid.
func (j *T) Group() int {
	return j.pid
}

// Pid returns the job's process ID.
func (j *T) Pid() int {
	return j.pid
}

// Poll reaps the job if it has already terminated, without blocking.
// It reports whether the job is done.
func (j *T) Poll() bool {
	if j.state == Done {
		return true
	}

	var status unix.WaitStatus

	pid, err := unix.Wait4(j.pid, &status, unix.WNOHANG, nil)
	if err != nil {
		// Someone else reaped it. There is nothing left to wait for.
		j.finish(-1)

		return true
	}

	if pid == j.pid {
		j.finish(code(status))
	}

	return j.state == Done
}

// State returns the job's current state.
func (j *T) State() State {
	return j.state
}

// Status returns the job's exit status. It is meaningful once the job is Done.
func (j *T) Status() int {
	return j.status
}

// Wait blocks until the job's process terminates and collects its status.
func (j *T) Wait() error {
	if j.state == Done {
		return nil
	}

	var status unix.WaitStatus

	for {
		_, err := unix.Wait4(j.pid, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			j.finish(-1)

			return err
		}

		break
	}

	j.finish(code(status))

	return nil
}

func (j *T) finish(status int) {
	j.state = Done
	j.status = status

	diag.Trace("reaped %d status %d", j.pid, status)
}

func code(status unix.WaitStatus) int {
	switch {
	case status.Exited():
		return status.ExitStatus()

	case status.Signaled():
		return 128 + int(status.Signal())

	default:
		return int(status)
	}
}
