//go:build unix

package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/winregi/pkg/config"
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/tempfiles"
	"github.com/arthur-debert/winregi/pkg/types"
)

func newProcessEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Execution.WaitDelay = time.Second
	return New(cfg, regstore.NewMemory(), tempfiles.NewOS(dir)), dir
}

func TestScriptLeavesNoTempFiles(t *testing.T) {
	e, dir := newProcessEngine(t)

	scripts := []struct {
		text    string
		timeout int
	}{
		{text: "echo ok\n", timeout: 5},
		{text: "exit 7\n", timeout: 5},
		{text: "sleep 30\n", timeout: 1},
	}
	for _, s := range scripts {
		e.Execute(context.Background(), types.ActionDescriptor{Backend: types.ScriptFile, RawText: s.text}, true, s.timeout)
	}

	left, err := tempfiles.List(dir)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestScriptTimeoutIsReported(t *testing.T) {
	e, _ := newProcessEngine(t)

	start := time.Now()
	result := e.Execute(context.Background(), types.ActionDescriptor{Backend: types.ScriptFile, RawText: "sleep 30\n"}, true, 1)
	elapsed := time.Since(start)

	assert.False(t, result.Success)
	assert.Equal(t, errors.ErrTimeout, result.Code)
	assert.True(t, strings.HasPrefix(result.Output, "timeout:"), result.Output)
	assert.Less(t, elapsed, 4*time.Second)
}

func TestShellOutputRoundTrip(t *testing.T) {
	e, _ := newProcessEngine(t)

	result := e.Execute(context.Background(), types.ActionDescriptor{Backend: types.InteractiveShell, RawText: "echo hello"}, false, 5)
	assert.True(t, result.Success)
	assert.Equal(t, "hello\n", result.Output)

	result = e.Execute(context.Background(), types.ActionDescriptor{Backend: types.InteractiveShell, RawText: "echo bad >&2; exit 2"}, false, 5)
	assert.False(t, result.Success)
	assert.Equal(t, errors.ErrCommandFailed, result.Code)
	assert.Equal(t, "bad", result.Output)
}
