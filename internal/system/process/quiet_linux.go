// Released under an MIT license. See LICENSE.

package process

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Quietly calls f with SIGTTOU blocked on the calling thread. Terminal
// calls made by f from a background group then succeed instead of stopping
// the shell. The disposition of SIGTTOU is left alone so jobs started later
// can still be stopped by it.
func Quietly(f func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var set, old unix.Sigset_t

	set.Val[0] = 1 << (unix.SIGTTOU - 1)

	err := unix.PthreadSigmask(unix.SIG_BLOCK, &set, &old)
	if err != nil {
		return err
	}

	defer func() {
		_ = unix.PthreadSigmask(unix.SIG_SETMASK, &old, nil)
	}()

	return f()
}
