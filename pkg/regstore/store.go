// Package regstore abstracts the hierarchical configuration store the
// mutation backend writes to.
//
// On Windows the native registry is used through golang.org/x/sys. Other
// hosts get a tree kept in memory, optionally persisted to a YAML file, with
// the same semantics: key names are case-insensitive, creating a value
// creates the missing intermediate keys, and only keys without subkeys can be
// deleted.
package regstore

import (
	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
)

// Store is the set of registry primitives the engine needs. Implementations
// report a missing key or value with errors.ErrNotFound and a denied access
// with errors.ErrPrivilegeRequired.
type Store interface {
	// SetValue writes value under key, creating key and its parents first.
	SetValue(key regpath.ResolvedPath, name string, value regvalue.TypedValue) error
	// GetValue reads a value.
	GetValue(key regpath.ResolvedPath, name string) (regvalue.TypedValue, error)
	// DeleteValue removes a single value from key.
	DeleteValue(key regpath.ResolvedPath, name string) error
	// DeleteKey removes key and its values. A key that still has subkeys is
	// left alone and reported with errors.ErrKeyHasSubkeys.
	DeleteKey(key regpath.ResolvedPath) error
	// KeyExists reports whether key is present.
	KeyExists(key regpath.ResolvedPath) (bool, error)
}

func hasSubkeys(path regpath.ResolvedPath) error {
	return errors.Newf(errors.ErrKeyHasSubkeys, "key %s has subkeys, delete them first", path.String()).
		WithDetail("path", path.String())
}

func notFound(what string, path regpath.ResolvedPath) error {
	return errors.Newf(errors.ErrNotFound, "%s not found: %s", what, path.String()).
		WithDetail("path", path.String())
}
