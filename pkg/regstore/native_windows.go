//go:build windows

package regstore

import (
	stderrors "errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
)

// Native is the Windows registry. Access always uses the 64-bit view.
type Native struct{}

// NewNative returns the native registry store.
func NewNative() *Native { return &Native{} }

func rootKey(root regpath.Root) (registry.Key, error) {
	switch root {
	case regpath.CurrentUser:
		return registry.CURRENT_USER, nil
	case regpath.LocalMachine:
		return registry.LOCAL_MACHINE, nil
	case regpath.ClassesRoot:
		return registry.CLASSES_ROOT, nil
	case regpath.Users:
		return registry.USERS, nil
	case regpath.CurrentConfig:
		return registry.CURRENT_CONFIG, nil
	}
	return 0, errors.Newf(errors.ErrInvalidRoot, "invalid registry root %d", int(root))
}

func translate(err error, what string, path regpath.ResolvedPath) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, registry.ErrNotExist):
		return notFound(what, path)
	case stderrors.Is(err, windows.ERROR_ACCESS_DENIED):
		return errors.Wrapf(err, errors.ErrPrivilegeRequired,
			"permission denied on %s, administrator privileges may be required", path.String())
	default:
		return errors.Wrapf(err, errors.ErrBackendFault, "registry operation on %s failed", path.String())
	}
}

func (n *Native) open(key regpath.ResolvedPath, access uint32) (registry.Key, error) {
	root, err := rootKey(key.Root)
	if err != nil {
		return 0, err
	}
	k, err := registry.OpenKey(root, key.SubkeyPath(), access|registry.WOW64_64KEY)
	if err != nil {
		return 0, translate(err, "key", key)
	}
	return k, nil
}

// SetValue implements Store. RegCreateKeyEx creates missing parents.
func (n *Native) SetValue(key regpath.ResolvedPath, name string, value regvalue.TypedValue) error {
	root, err := rootKey(key.Root)
	if err != nil {
		return err
	}
	k, _, err := registry.CreateKey(root, key.SubkeyPath(), registry.SET_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return translate(err, "key", key)
	}
	defer k.Close()

	switch v := value.(type) {
	case regvalue.StringValue:
		err = k.SetStringValue(name, string(v))
	case regvalue.Int32Value:
		err = k.SetDWordValue(name, uint32(v))
	case regvalue.Int64Value:
		err = k.SetQWordValue(name, uint64(v))
	case regvalue.BinaryValue:
		err = k.SetBinaryValue(name, []byte(v))
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported registry value %T", value)
	}
	return translate(err, "value", key.WithValue(name))
}

// GetValue implements Store. Types outside the four supported ones are
// returned as raw bytes.
func (n *Native) GetValue(key regpath.ResolvedPath, name string) (regvalue.TypedValue, error) {
	k, err := n.open(key, registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	target := key.WithValue(name)
	size, valtype, err := k.GetValue(name, nil)
	if err != nil {
		return nil, translate(err, "value", target)
	}

	switch valtype {
	case registry.SZ, registry.EXPAND_SZ:
		s, _, err := k.GetStringValue(name)
		return regvalue.StringValue(s), translate(err, "value", target)
	case registry.DWORD:
		i, _, err := k.GetIntegerValue(name)
		return regvalue.Int32Value(uint32(i)), translate(err, "value", target)
	case registry.QWORD:
		i, _, err := k.GetIntegerValue(name)
		return regvalue.Int64Value(i), translate(err, "value", target)
	default:
		buf := make([]byte, size)
		_, _, err := k.GetValue(name, buf)
		return regvalue.BinaryValue(buf), translate(err, "value", target)
	}
}

// DeleteValue implements Store.
func (n *Native) DeleteValue(key regpath.ResolvedPath, name string) error {
	k, err := n.open(key, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return translate(k.DeleteValue(name), "value", key.WithValue(name))
}

// DeleteKey implements Store. Keys with subkeys are refused before the
// delete is attempted.
func (n *Native) DeleteKey(key regpath.ResolvedPath) error {
	if len(key.Segments) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "cannot delete predefined root %s", key.Root)
	}
	root, err := rootKey(key.Root)
	if err != nil {
		return err
	}

	k, err := n.open(key, registry.QUERY_VALUE)
	if err != nil {
		return err
	}
	info, err := k.Stat()
	k.Close()
	if err != nil {
		return translate(err, "key", key)
	}
	if info.SubKeyCount > 0 {
		return hasSubkeys(key)
	}
	return translate(regDeleteKeyEx(root, key.SubkeyPath()), "key", key)
}

var procRegDeleteKeyExW = windows.NewLazySystemDLL("advapi32.dll").NewProc("RegDeleteKeyExW")

// regDeleteKeyEx deletes subkey from the 64-bit view, matching the view open
// and CreateKey use. x/sys/windows/registry only wraps RegDeleteKeyW.
func regDeleteKeyEx(root registry.Key, subkey string) error {
	p, err := windows.UTF16PtrFromString(subkey)
	if err != nil {
		return err
	}
	if err := procRegDeleteKeyExW.Find(); err != nil {
		return err
	}
	r, _, _ := procRegDeleteKeyExW.Call(uintptr(root), uintptr(unsafe.Pointer(p)), uintptr(registry.WOW64_64KEY), 0)
	if r != 0 {
		return syscall.Errno(r)
	}
	return nil
}

// KeyExists implements Store.
func (n *Native) KeyExists(key regpath.ResolvedPath) (bool, error) {
	k, err := n.open(key, registry.QUERY_VALUE)
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	k.Close()
	return true, nil
}

// Default returns the native registry; path is ignored on Windows.
func Default(path string) (Store, error) {
	return NewNative(), nil
}
