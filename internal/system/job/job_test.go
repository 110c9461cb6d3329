package job

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/michaelmacinnis/tish/internal/system/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func start(t *testing.T, argv ...string) *T {
	t.Helper()

	path, err := exec.LookPath(argv[0])
	require.NoError(t, err)

	p, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
		Sys:   process.SysProcAttr(false, 0),
	})
	require.NoError(t, err)

	pid := p.Pid

	// Release clears p.Pid.
	_ = p.Release()

	return New(pid)
}

func TestWait(t *testing.T) {
	j := start(t, "sh", "-c", "sleep 0.1; exit 3")

	assert.Equal(t, Running, j.State())
	assert.Positive(t, j.Pid())
	assert.Equal(t, j.Pid(), j.Group())

	g, err := unix.Getpgid(j.Pid())
	require.NoError(t, err)
	assert.Equal(t, j.Pid(), g)

	require.NoError(t, j.Wait())

	assert.Equal(t, Done, j.State())
	assert.Equal(t, 3, j.Status())

	// Waiting again is harmless.
	require.NoError(t, j.Wait())
	assert.Equal(t, 3, j.Status())
}

func TestPoll(t *testing.T) {
	j := start(t, "sleep", "0.2")

	assert.False(t, j.Poll())
	assert.Equal(t, Running, j.State())

	require.Eventually(t, j.Poll, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, Done, j.State())
	assert.Equal(t, 0, j.Status())
}

func TestRegistryReapAll(t *testing.T) {
	r := NewRegistry()

	slow := start(t, "sleep", "0.3")
	fast := start(t, "true")

	r.Add(slow)
	r.Add(fast)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []*T{slow, fast}, r.Jobs())

	// A finished job keeps its slot until reaped.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, r.Len())

	begin := time.Now()

	r.ReapAll()

	assert.GreaterOrEqual(t, time.Since(begin), 200*time.Millisecond)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, Done, slow.State())
	assert.Equal(t, Done, fast.State())
}

func TestRegistryReapAllIgnoresErrors(t *testing.T) {
	r := NewRegistry()

	j := start(t, "true")

	// Reap it behind the registry's back.
	var status unix.WaitStatus
	_, err := unix.Wait4(j.Pid(), &status, 0, nil)
	require.NoError(t, err)

	r.Add(j)
	r.ReapAll()

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, Done, j.State())
}

func TestForwardWithoutForegroundJob(t *testing.T) {
	s := NewShell(false, false)
	s.ClearForeground()

	j := start(t, "sleep", "5")
	t.Cleanup(func() {
		_ = process.Interrupt(j.Group(), unix.SIGKILL)
		_ = j.Wait()
	})

	Forward(unix.SIGINT)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, j.Poll())
}

func TestForwardToForegroundGroup(t *testing.T) {
	s := NewShell(false, false)

	background := start(t, "sleep", "5")
	t.Cleanup(func() {
		_ = process.Interrupt(background.Group(), unix.SIGKILL)
		_ = background.Wait()
	})

	fg := start(t, "sleep", "5")

	s.SetForeground(fg)
	assert.Equal(t, fg.Group(), Foreground())

	Forward(unix.SIGINT)

	require.NoError(t, fg.Wait())
	s.ClearForeground()

	assert.Equal(t, 128+int(unix.SIGINT), fg.Status())
	assert.Equal(t, 0, Foreground())

	assert.False(t, background.Poll())
}

func TestInterruptHandler(t *testing.T) {
	s := NewShell(false, false)
	s.Notify()
	t.Cleanup(s.Stop)

	j := start(t, "sleep", "5")

	s.SetForeground(j)

	require.NoError(t, unix.Kill(os.Getpid(), unix.SIGINT))

	begin := time.Now()

	require.NoError(t, j.Wait())
	s.ClearForeground()

	assert.Less(t, time.Since(begin), 4*time.Second)
	assert.Equal(t, 128+int(unix.SIGINT), j.Status())
}

func TestInitializeNonInteractive(t *testing.T) {
	s := NewShell(false, true)

	require.NoError(t, s.Initialize())

	assert.Equal(t, unix.Getpgrp(), s.group)
	assert.False(t, s.interactive)
	assert.False(t, s.Handoff())

	// Nothing to reclaim.
	s.Reclaim()
}
