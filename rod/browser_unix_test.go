//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/pagekeep/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	browser, err := rod.NewBrowser()
	require.NoError(t, err)

	// Get the launcher PID before closing
	pid := browser.LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	// On Unix, FindProcess always succeeds, so we must use Signal to verify
	err = syscall.Kill(pid, syscall.Signal(0))
	require.NoError(t, err, "launcher process should be running before Close()")

	err = browser.Close()
	require.NoError(t, err)

	// Second close is a no-op
	require.NoError(t, browser.Close())

	// Give the OS a moment to clean up the process
	time.Sleep(100 * time.Millisecond)

	err = syscall.Kill(pid, syscall.Signal(0))
	assert.Error(t, err, "launcher process should be terminated after Close()")
}
