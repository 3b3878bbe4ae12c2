//go:build !windows

// Package process stops headless browser process trees left behind by a
// conversion.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes Chrome's renderer and GPU helpers down with the browser.
// Non-positive pids are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors are ignored; the caller also kills the launcher directly.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
