// Released under an MIT license. See LICENSE.

package job

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/michaelmacinnis/tish/internal/common/diag"
	"github.com/michaelmacinnis/tish/internal/system/process"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// The foreground slot is the only shell state the interrupt handler
// reads, so it lives outside Shell where the handler can reach it.
// Zero means no job owns the terminal.
//
//nolint:gochecknoglobals
var foreground atomic.Int64

// Shell holds the job control state of the shell process.
type Shell struct {
	group       int
	interactive bool
	modes       *term.State
	monitor     bool
	terminal    int

	signals chan os.Signal
}

// NewShell creates the job control state for a shell reading from standard input.
func NewShell(interactive, monitor bool) *Shell {
	return &Shell{
		interactive: interactive,
		monitor:     monitor,
		terminal:    int(os.Stdin.Fd()),
	}
}

// Initialize claims the terminal when the shell is interactive. It blocks
// until the shell's process group is the terminal's foreground group and
// records the terminal modes. Non-interactive shells skip all of this.
func (s *Shell) Initialize() error {
	s.group = unix.Getpgrp()

	if !s.interactive {
		return nil
	}

	group, err := process.BecomeForegroundGroup(s.terminal)
	if err != nil {
		return fmt.Errorf("claiming terminal: %w", err)
	}

	s.group = group

	s.modes, err = term.GetState(s.terminal)
	if err != nil {
		return fmt.Errorf("saving terminal modes: %w", err)
	}

	diag.Trace("shell group %d owns terminal %d", s.group, s.terminal)

	return nil
}

// Notify installs the interrupt handler. Interrupts received while a job
// is in the foreground are forwarded to that job's process group.
func (s *Shell) Notify() {
	s.signals = make(chan os.Signal, 1)

	signal.Notify(s.signals, unix.SIGINT)

	go func(signals chan os.Signal) {
		for sig := range signals {
			if n, ok := sig.(syscall.Signal); ok {
				Forward(n)
			}
		}
	}(s.signals)
}

// Stop removes the interrupt handler.
func (s *Shell) Stop() {
	if s.signals == nil {
		return
	}

	signal.Stop(s.signals)
	close(s.signals)

	s.signals = nil
}

// Handoff reports whether foreground jobs are given the terminal.
func (s *Shell) Handoff() bool {
	return s.interactive && s.monitor && s.modes != nil
}

// Terminal returns the controlling terminal's file descriptor.
func (s *Shell) Terminal() int {
	return s.terminal
}

// Reclaim returns the terminal to the shell after a foreground job,
// restoring the modes saved at start up.
func (s *Shell) Reclaim() {
	if !s.Handoff() {
		return
	}

	// The shell is in a background group until the terminal is back.
	err := process.Quietly(func() error {
		if process.ForegroundGroup(s.terminal) != s.group {
			err := process.SetForegroundGroup(s.terminal, s.group)
			if err != nil {
				return fmt.Errorf("reclaiming terminal: %w", err)
			}
		}

		return term.Restore(s.terminal, s.modes)
	})
	if err != nil {
		diag.Trace("%v", err)
	}
}

// SetForeground records j as the job that owns the terminal.
func (s *Shell) SetForeground(j *T) {
	foreground.Store(int64(j.Group()))
}

// ClearForeground empties the foreground slot.
func (s *Shell) ClearForeground() {
	foreground.Store(0)
}

// Foreground returns the foreground job's process group, or zero.
func Foreground() int {
	return int(foreground.Load())
}

// Forward delivers sig to the foreground job's process group. With no
// foreground job it does nothing, so an idle shell survives interrupts.
// It reads the foreground slot and nothing else.
func Forward(sig syscall.Signal) {
	g := Foreground()
	if g == 0 {
		return
	}

	err := process.Interrupt(g, sig)

	diag.Trace("forwarded %v to group %d: %v", sig, g, err)
}
