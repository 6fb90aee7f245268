//go:build unix

package sysproc

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// KillGroupOnCancel runs cmd in its own process group and SIGKILLs the group
// when cmd's context is done.
func KillGroupOnCancel(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		// negative pid addresses the whole group
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
}

// ShellCommand returns a Cmd running argv with text as its final argument.
func ShellCommand(argv []string, text string) *exec.Cmd {
	return exec.Command(argv[0], append(argv[1:len(argv):len(argv)], text)...)
}

// Detach starts cmd in a new session with no controlling terminal.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
