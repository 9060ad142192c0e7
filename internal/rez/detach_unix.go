// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package rez

import (
	"os/exec"
	"syscall"
)

// detachSysProcAttr places the child in a new session so it survives the
// dispatcher exiting and terminal hangups.
func detachSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
