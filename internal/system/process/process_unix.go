// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

// Package process wraps the process group and terminal calls used for job control.
package process

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// BecomeForegroundGroup performs the Unix incantations necessary to put
// the current process in the foreground of the terminal fd. It returns the
// shell's process group, which is its own process ID on success.
func BecomeForegroundGroup(fd int) (group int, err error) {
	id := unix.Getpid()

	group = unix.Getpgrp()
	for group != ForegroundGroup(fd) {
		// Stops us until someone moves our group to the foreground.
		err = unix.Kill(-group, unix.SIGTTIN)
		if err != nil {
			return
		}

		group = unix.Getpgrp()
	}

	if id != group {
		err = unix.Setpgid(id, id)
		if err != nil {
			return
		}

		group = id
	}

	// After setpgid our new group is not yet in the foreground.
	err = Quietly(func() error {
		return SetForegroundGroup(fd, group)
	})

	return
}

// ForegroundGroup returns the current foreground group ID of the terminal fd.
func ForegroundGroup(fd int) int {
	group, err := unix.IoctlGetInt(fd, unix.TIOCGPGRP)
	if err != nil {
		return 0
	}

	return group
}

// Interrupt sends sig to every member of the process group g.
func Interrupt(g int, sig syscall.Signal) error {
	if g <= 0 {
		return unix.EINVAL
	}

	return unix.Kill(-g, sig)
}

// Join places pid in the process group of the same number. It is the
// parent's half of the setpgid race: the child does the same before exec.
// EACCES means the child has already exec'd, in which case the child's own
// call has taken effect. ESRCH means it has already gone.
func Join(pid int) error {
	err := unix.Setpgid(pid, pid)
	if err == unix.EACCES || err == unix.ESRCH {
		return nil
	}

	return err
}

// SetForegroundGroup sets the terminal's foreground group to g.
func SetForegroundGroup(fd, g int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPGRP, g)
}

// SysProcAttr returns the attributes for a new job. Each job leads its
// own process group. A foreground job in monitor mode also takes the
// terminal fd.
func SysProcAttr(foreground bool, fd int) *syscall.SysProcAttr {
	sys := &syscall.SysProcAttr{Setpgid: true}

	if foreground {
		sys.Foreground = true
		sys.Ctty = fd
	}

	return sys
}
