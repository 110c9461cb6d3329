// Released under an MIT license. See LICENSE.

//go:build aix || darwin || dragonfly || freebsd || netbsd || openbsd || solaris

package process

import (
	"os/signal"

	"golang.org/x/sys/unix"
)

// Quietly calls f with SIGTTOU ignored. Without a per-thread signal mask
// the signal stays ignored afterwards.
func Quietly(f func() error) error {
	signal.Ignore(unix.SIGTTOU)

	return f()
}
