// SPDX-License-Identifier: MPL-2.0

//go:build windows

package rez

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detachSysProcAttr gives the child its own console and process group so it
// outlives the dispatcher and ignores its console signals.
func detachSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
