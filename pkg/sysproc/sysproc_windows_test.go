//go:build windows

package sysproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellCommandKeepsQuotesVerbatim(t *testing.T) {
	text := `start "" "C:\Program Files\App\app.exe"`
	cmd := ShellCommand([]string{"cmd.exe", "/d", "/c"}, text)
	assert.Equal(t, `cmd.exe /d /c start "" "C:\Program Files\App\app.exe"`, cmd.SysProcAttr.CmdLine)

	cmd = ShellCommand([]string{`C:\Windows System\cmd.exe`, "/c"}, "echo hi")
	assert.Equal(t, `"C:\Windows System\cmd.exe" /c echo hi`, cmd.SysProcAttr.CmdLine)
}

func TestDetachKeepsCommandLine(t *testing.T) {
	cmd := ShellCommand([]string{"cmd.exe", "/c"}, `echo "x"`)
	Detach(cmd)
	assert.Equal(t, `cmd.exe /c echo "x"`, cmd.SysProcAttr.CmdLine)
	assert.NotZero(t, cmd.SysProcAttr.CreationFlags)
}
