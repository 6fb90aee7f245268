package regpath

import (
	"testing"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantDelete  bool
		wantLiteral string
		wantCode    errors.ErrorCode
	}{
		{
			name:        "set dword",
			input:       `HKCU\Software\Test\Value=dword:0000002a`,
			wantPath:    `HKCU\Software\Test\Value`,
			wantLiteral: "dword:0000002a",
		},
		{
			name:        "literal keeps later equals signs",
			input:       `HKCU\Environment\OPTS=a=b`,
			wantPath:    `HKCU\Environment\OPTS`,
			wantLiteral: "a=b",
		},
		{
			name:        "empty literal",
			input:       `HKCU\Software\Test\Empty=`,
			wantPath:    `HKCU\Software\Test\Empty`,
			wantLiteral: "",
		},
		{
			name:       "delete",
			input:      `HKCU\Software\Test\Value-`,
			wantPath:   `HKCU\Software\Test\Value`,
			wantDelete: true,
		},
		{
			name:       "delete explicit value",
			input:      `HKLM\SOFTWARE\Vendor:Setting-`,
			wantPath:   `HKLM\SOFTWARE\Vendor:Setting`,
			wantDelete: true,
		},
		{name: "no operator", input: `HKCU\Software\Test`, wantCode: errors.ErrInvalidFormat},
		{name: "empty", input: "   ", wantCode: errors.ErrInvalidFormat},
		{name: "root only", input: `HKCU=1`, wantCode: errors.ErrInvalidFormat},
		{name: "unknown root", input: `HKXX\Software\Test=1`, wantCode: errors.ErrInvalidFormat},
		{name: "no key after root", input: `HKCU\-`, wantCode: errors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetErrorCode(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, cmd.Path.String())
			assert.Equal(t, tt.wantDelete, cmd.Delete)
			assert.Equal(t, tt.wantLiteral, cmd.Literal)
		})
	}
}

func TestParseCommandUnknownRootKeepsCause(t *testing.T) {
	_, err := ParseCommand(`HKXX\Software\Test=1`)
	require.Error(t, err)

	var outer *errors.WinregiError
	require.ErrorAs(t, err, &outer)
	assert.True(t, errors.IsErrorCode(outer.Unwrap(), errors.ErrInvalidRoot))
}

func TestCommandSetTarget(t *testing.T) {
	cmd, err := ParseCommand(`HKCU\Software\Test\Value=1`)
	require.NoError(t, err)
	key, name := cmd.SetTarget()
	assert.Equal(t, `HKCU\Software\Test`, key.String())
	assert.Equal(t, "Value", name)

	cmd, err = ParseCommand(`HKCU\Software\Test:Value=1`)
	require.NoError(t, err)
	key, name = cmd.SetTarget()
	assert.Equal(t, `HKCU\Software\Test`, key.String())
	assert.Equal(t, "Value", name)
}
