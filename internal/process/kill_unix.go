//go:build !windows

package process

import "syscall"

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the launcher's own Kill provides the fallback path.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
