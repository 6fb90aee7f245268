package regstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "registry.yaml")

	store, err := OpenFile(path)
	require.NoError(t, err)

	key := mustResolve(t, `HKCU\Software\Test`)
	require.NoError(t, store.SetValue(key, "Number", regvalue.Int32Value(42)))
	require.NoError(t, store.SetValue(key, "Text", regvalue.StringValue("dword:not-a-number")))
	require.NoError(t, store.SetValue(key, "Blob", regvalue.BinaryValue{0xca, 0xfe}))
	require.NoError(t, store.SetValue(mustResolve(t, `HKCU\Software\Empty\Child`), "X", regvalue.Int64Value(1)))
	require.NoError(t, store.DeleteValue(mustResolve(t, `HKCU\Software\Empty\Child`), "X"))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	v, err := reopened.GetValue(key, "Number")
	require.NoError(t, err)
	assert.Equal(t, regvalue.Int32Value(42), v)

	v, err = reopened.GetValue(key, "Text")
	require.NoError(t, err)
	assert.Equal(t, regvalue.StringValue("dword:not-a-number"), v)

	v, err = reopened.GetValue(key, "Blob")
	require.NoError(t, err)
	assert.Equal(t, regvalue.BinaryValue{0xca, 0xfe}, v)

	exists, err := reopened.KeyExists(mustResolve(t, `HKCU\Software\Empty\Child`))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileDeleteKeyRefusesSubkeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	store, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, store.SetValue(mustResolve(t, `HKCU\Software\Vendor\App`), "Theme", regvalue.Int32Value(1)))

	err = store.DeleteKey(mustResolve(t, `HKCU\Software\Vendor`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrKeyHasSubkeys))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, err := reopened.GetValue(mustResolve(t, `HKCU\Software\Vendor\App`), "Theme")
	require.NoError(t, err)
	assert.Equal(t, regvalue.Int32Value(1), v)
}

func TestOpenFileMissingIsEmpty(t *testing.T) {
	store, err := OpenFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	_, err = store.GetValue(mustResolve(t, `HKCU\Software`), "X")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestOpenFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys:\n  'HKXX\\Nope': {}\n"), 0600))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreUnavailable))
}
