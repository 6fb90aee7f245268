package regpath

import (
	"testing"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     ResolvedPath
		wantCode errors.ErrorCode
	}{
		{
			name:  "short root with key",
			input: `HKCU\Software\Test`,
			want:  ResolvedPath{Root: CurrentUser, Segments: []string{"Software", "Test"}},
		},
		{
			name:  "long root with value name",
			input: `HKEY_LOCAL_MACHINE\SOFTWARE\Policies:NoAutoUpdate`,
			want: ResolvedPath{
				Root:      LocalMachine,
				Segments:  []string{"SOFTWARE", "Policies"},
				ValueName: strPtr("NoAutoUpdate"),
			},
		},
		{
			name:  "case insensitive root",
			input: `hkcr\.txt`,
			want:  ResolvedPath{Root: ClassesRoot, Segments: []string{".txt"}},
		},
		{
			name:  "powershell drive form",
			input: `HKCU:\Control Panel\Desktop`,
			want:  ResolvedPath{Root: CurrentUser, Segments: []string{"Control Panel", "Desktop"}},
		},
		{
			name:  "empty value name is the default value",
			input: `HKU\.DEFAULT\Environment:`,
			want: ResolvedPath{
				Root:      Users,
				Segments:  []string{".DEFAULT", "Environment"},
				ValueName: strPtr(""),
			},
		},
		{
			name:  "doubled and trailing separators dropped",
			input: `HKCC\\System\Setup\`,
			want:  ResolvedPath{Root: CurrentConfig, Segments: []string{"System", "Setup"}},
		},
		{
			name:  "bare root",
			input: `HKCU`,
			want:  ResolvedPath{Root: CurrentUser, Segments: []string{}},
		},
		{name: "unknown root", input: `HKXX\Software\Test`, wantCode: errors.ErrInvalidRoot},
		{name: "unknown root with value", input: `Computer\HKCU\Software:Value`, wantCode: errors.ErrInvalidRoot},
		{name: "empty", input: ``, wantCode: errors.ErrInvalidRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Root, got.Root)
			assert.Equal(t, tt.want.Segments, got.Segments)
			assert.Equal(t, tt.want.ValueName, got.ValueName)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	inputs := []string{
		`HKCU\Software\Test:Value`,
		`HKEY_CLASSES_ROOT\*\shell`,
		`HKLM`,
		`bogus\path`,
	}

	for _, input := range inputs {
		first, err1 := Resolve(input)
		second, err2 := Resolve(input)
		assert.Equal(t, err1 == nil, err2 == nil, input)
		assert.True(t, first.Equal(second), input)
	}
}

func TestResolvedPathHelpers(t *testing.T) {
	p, err := Resolve(`HKCU\Software\Test:Value`)
	require.NoError(t, err)

	assert.Equal(t, `Software\Test`, p.SubkeyPath())
	assert.Equal(t, "Test", p.Leaf())
	assert.Equal(t, `HKCU\Software\Test:Value`, p.String())

	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, `HKCU\Software`, parent.String())
	assert.False(t, parent.HasValueName())

	key := p.Key()
	assert.Equal(t, `HKCU\Software\Test`, key.String())
	assert.Equal(t, `HKCU\Software\Test:Other`, key.WithValue("Other").String())

	_, ok = ResolvedPath{Root: LocalMachine}.Parent()
	assert.False(t, ok)
}

func TestRoots(t *testing.T) {
	for _, root := range AllRoots() {
		parsed, err := ParseRoot(root.String())
		require.NoError(t, err)
		assert.Equal(t, root, parsed)

		parsed, err = ParseRoot(root.LongName())
		require.NoError(t, err)
		assert.Equal(t, root, parsed)
	}

	assert.True(t, LocalMachine.IsMachineWide())
	assert.True(t, ClassesRoot.IsMachineWide())
	assert.False(t, CurrentUser.IsMachineWide())
	assert.False(t, Users.IsMachineWide())
	assert.False(t, CurrentConfig.IsMachineWide())

	assert.True(t, HasKnownRoot(`HKU\S-1-5-18`))
	assert.False(t, HasKnownRoot(`C:\Windows`))
}
