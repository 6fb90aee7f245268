package backends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/regvalue"
)

func key(t *testing.T, path string) regpath.ResolvedPath {
	t.Helper()
	p, err := regpath.Resolve(path)
	require.NoError(t, err)
	return p
}

func TestMutationSet(t *testing.T) {
	tests := []struct {
		name    string
		command string
		key     string
		value   string
		want    regvalue.TypedValue
	}{
		{
			name:    "last segment is the value",
			command: `HKCU\Software\Test\Value=dword:0000002a`,
			key:     `HKCU\Software\Test`,
			value:   "Value",
			want:    regvalue.Int32Value(42),
		},
		{
			name:    "explicit value name",
			command: `HKCU\Software\Test:Mode=qword:10`,
			key:     `HKCU\Software\Test`,
			value:   "Mode",
			want:    regvalue.Int64Value(16),
		},
		{
			name:    "default value",
			command: `HKCU\Software\Test:=hello`,
			key:     `HKCU\Software\Test`,
			value:   "",
			want:    regvalue.StringValue("hello"),
		},
		{
			name:    "binary",
			command: `HKCU\Software\Test\Blob=hex:01,02,ff`,
			key:     `HKCU\Software\Test`,
			value:   "Blob",
			want:    regvalue.BinaryValue{0x01, 0x02, 0xff},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := regstore.NewMemory()
			m := NewMutation(store)

			out, err := m.Execute(context.Background(), tt.command, 0)
			require.NoError(t, err)
			assert.Contains(t, out, "Set ")

			got, err := store.GetValue(key(t, tt.key), tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMutationSetMalformedLiteral(t *testing.T) {
	store := regstore.NewMemory()
	_, err := NewMutation(store).Execute(context.Background(), `HKCU\Software\Test\V=dword:xyz`, 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedLiteral))

	exists, err := store.KeyExists(key(t, `HKCU\Software\Test`))
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written for a bad literal")
}

func TestMutationDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit value", func(t *testing.T) {
		store := regstore.NewMemory()
		require.NoError(t, store.SetValue(key(t, `HKCU\Software\Test`), "A", regvalue.StringValue("a")))
		require.NoError(t, store.SetValue(key(t, `HKCU\Software\Test`), "B", regvalue.StringValue("b")))

		out, err := NewMutation(store).Execute(ctx, `HKCU\Software\Test:A-`, 0)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted value")

		_, err = store.GetValue(key(t, `HKCU\Software\Test`), "A")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
		_, err = store.GetValue(key(t, `HKCU\Software\Test`), "B")
		assert.NoError(t, err)
	})

	t.Run("last segment as value", func(t *testing.T) {
		store := regstore.NewMemory()
		require.NoError(t, store.SetValue(key(t, `HKCU\Software\Test`), "Value", regvalue.Int32Value(1)))

		out, err := NewMutation(store).Execute(ctx, `HKCU\Software\Test\Value-`, 0)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted value")

		exists, err := store.KeyExists(key(t, `HKCU\Software\Test`))
		require.NoError(t, err)
		assert.True(t, exists, "the parent key stays")
	})

	t.Run("falls back to key", func(t *testing.T) {
		store := regstore.NewMemory()
		require.NoError(t, store.SetValue(key(t, `HKCU\Software\Test\Sub`), "V", regvalue.Int32Value(1)))

		out, err := NewMutation(store).Execute(ctx, `HKCU\Software\Test\Sub-`, 0)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted key")

		exists, err := store.KeyExists(key(t, `HKCU\Software\Test\Sub`))
		require.NoError(t, err)
		assert.False(t, exists)
		exists, err = store.KeyExists(key(t, `HKCU\Software\Test`))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("key with subkeys is refused", func(t *testing.T) {
		store := regstore.NewMemory()
		require.NoError(t, store.SetValue(key(t, `HKCU\Software\Test\Sub`), "V", regvalue.Int32Value(1)))

		_, err := NewMutation(store).Execute(ctx, `HKCU\Software\Test-`, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrKeyHasSubkeys))

		v, err := store.GetValue(key(t, `HKCU\Software\Test\Sub`), "V")
		require.NoError(t, err)
		assert.Equal(t, regvalue.Int32Value(1), v)
	})

	t.Run("missing target twice", func(t *testing.T) {
		m := NewMutation(regstore.NewMemory())
		for i := 0; i < 2; i++ {
			out, err := m.Execute(ctx, `HKCU\Software\Test\Value-`, 0)
			require.NoError(t, err)
			assert.Contains(t, out, "not found")
		}
		out, err := m.Execute(ctx, `HKCU\Software\Test:Value-`, 0)
		require.NoError(t, err)
		assert.Contains(t, out, "not found")
	})
}

// deniedStore fails every write with an access error.
type deniedStore struct {
	regstore.Store
}

func (deniedStore) SetValue(regpath.ResolvedPath, string, regvalue.TypedValue) error {
	return errors.New(errors.ErrPrivilegeRequired, "access is denied")
}

func TestMutationPropagatesStoreErrors(t *testing.T) {
	_, err := NewMutation(deniedStore{regstore.NewMemory()}).Execute(context.Background(), `HKCU\Software\Test\V=1`, 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrivilegeRequired))
}

func TestMutationInvalidCommand(t *testing.T) {
	_, err := NewMutation(regstore.NewMemory()).Execute(context.Background(), `HKCU\Software\Test`, 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidFormat))
}
