//go:build unix

package sysproc

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKillGroupOnCancelKillsChildren(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	// the backgrounded sleep holds stdout open; only a group kill releases it
	cmd := exec.CommandContext(ctx, "sh", "-c", "sleep 30 & sleep 30")
	KillGroupOnCancel(cmd)
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	_, err := cmd.Output()
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, cmd.SysProcAttr.Setpgid)
}

func TestShellCommandAppendsText(t *testing.T) {
	argv := []string{"sh", "-c"}
	cmd := ShellCommand(argv, `printf '%s' "a b"`)
	assert.Equal(t, []string{"sh", "-c", `printf '%s' "a b"`}, cmd.Args)
	assert.Equal(t, []string{"sh", "-c"}, argv)

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "a b", string(out))
}

func TestDetachSetsSession(t *testing.T) {
	cmd := exec.Command("true")
	Detach(cmd)
	assert.True(t, cmd.SysProcAttr.Setsid)
	require.NoError(t, cmd.Run())
}
