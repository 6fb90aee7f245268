package regstore

import (
	"sync"
	"testing"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, path string) regpath.ResolvedPath {
	t.Helper()
	p, err := regpath.Resolve(path)
	require.NoError(t, err)
	return p
}

func TestMemorySetCreatesIntermediateKeys(t *testing.T) {
	store := NewMemory()
	key := mustResolve(t, `HKCU\Software\Vendor\App`)

	require.NoError(t, store.SetValue(key, "Enabled", regvalue.Int32Value(1)))

	for _, p := range []string{`HKCU\Software`, `HKCU\Software\Vendor`, `HKCU\Software\Vendor\App`} {
		exists, err := store.KeyExists(mustResolve(t, p))
		require.NoError(t, err)
		assert.True(t, exists, p)
	}

	v, err := store.GetValue(key, "enabled")
	require.NoError(t, err)
	assert.Equal(t, regvalue.Int32Value(1), v)
}

func TestMemoryKeysAreCaseInsensitive(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.SetValue(mustResolve(t, `HKCU\Software\Test`), "Value", regvalue.StringValue("a")))

	v, err := store.GetValue(mustResolve(t, `hkey_current_user\SOFTWARE\test`), "VALUE")
	require.NoError(t, err)
	assert.Equal(t, regvalue.StringValue("a"), v)
}

func TestMemoryNotFound(t *testing.T) {
	store := NewMemory()
	key := mustResolve(t, `HKCU\Software\Missing`)

	_, err := store.GetValue(key, "Value")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	err = store.DeleteValue(key, "Value")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	err = store.DeleteKey(key)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	require.NoError(t, store.SetValue(key, "Other", regvalue.StringValue("x")))
	err = store.DeleteValue(key, "Value")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestMemoryDeleteKeyOnlyRemovesLeaves(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.SetValue(mustResolve(t, `HKCU\Software\Tree\Leaf`), "V", regvalue.Int64Value(7)))

	err := store.DeleteKey(mustResolve(t, `HKCU\Software\Tree`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrKeyHasSubkeys))

	v, err := store.GetValue(mustResolve(t, `HKCU\Software\Tree\Leaf`), "V")
	require.NoError(t, err)
	assert.Equal(t, regvalue.Int64Value(7), v)

	require.NoError(t, store.DeleteKey(mustResolve(t, `HKCU\Software\Tree\Leaf`)))
	require.NoError(t, store.DeleteKey(mustResolve(t, `HKCU\Software\Tree`)))

	exists, err := store.KeyExists(mustResolve(t, `HKCU\Software\Tree`))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.KeyExists(mustResolve(t, `HKCU\Software`))
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.DeleteKey(mustResolve(t, `HKCU`))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestMemoryBinaryValuesAreCopied(t *testing.T) {
	store := NewMemory()
	key := mustResolve(t, `HKCU\Software\Bin`)
	data := regvalue.BinaryValue{1, 2, 3}

	require.NoError(t, store.SetValue(key, "Data", data))
	data[0] = 9

	v, err := store.GetValue(key, "Data")
	require.NoError(t, err)
	assert.Equal(t, regvalue.BinaryValue{1, 2, 3}, v)
}

func TestMemoryConcurrentWriters(t *testing.T) {
	store := NewMemory()
	key := mustResolve(t, `HKCU\Software\Concurrent`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.SetValue(key, "Counter", regvalue.Int32Value(uint32(n)))
		}(i)
	}
	wg.Wait()

	v, err := store.GetValue(key, "Counter")
	require.NoError(t, err)
	assert.Equal(t, regvalue.KindDWord, v.Kind())
}
