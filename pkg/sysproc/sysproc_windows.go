//go:build windows

package sysproc

import (
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

// KillGroupOnCancel hides the console window of cmd and kills its whole
// process tree when cmd's context is done.
func KillGroupOnCancel(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NO_WINDOW | windows.CREATE_NEW_PROCESS_GROUP
	cmd.Cancel = func() error {
		pid := strconv.Itoa(cmd.Process.Pid)
		if err := exec.Command("taskkill", "/T", "/F", "/PID", pid).Run(); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}

// ShellCommand returns a Cmd running argv with text appended verbatim. The
// command line is built by hand: exec escapes quotes as \" which cmd.exe
// does not understand, so `start "" "C:\Program Files\app.exe"` would break.
func ShellCommand(argv []string, text string) *exec.Cmd {
	cmd := exec.Command(argv[0], append(argv[1:len(argv):len(argv)], text)...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: windows.ComposeCommandLine(argv) + " " + text,
	}
	return cmd
}

// Detach starts cmd with its own console so it survives the caller.
func Detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_CONSOLE | windows.CREATE_NEW_PROCESS_GROUP
}
