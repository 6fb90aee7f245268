package regstore

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
)

type fileValue struct {
	Type regvalue.Kind `yaml:"type"`
	Data string        `yaml:"data"`
}

type fileDocument struct {
	Keys map[string]map[string]fileValue `yaml:"keys"`
}

// File is a Memory store persisted to a YAML document after every change.
// It stands in for the registry on hosts that do not have one.
type File struct {
	path string
	mu   sync.Mutex
	mem  *Memory
}

// OpenFile loads the store at path. A missing file yields an empty store; the
// file is created on the first write.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, mem: NewMemory()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to read store file %s", path)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to parse store file %s", path)
	}
	for keyText, values := range doc.Keys {
		key, err := regpath.Resolve(keyText)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrStoreUnavailable, "invalid key %q in store file", keyText)
		}
		f.mem.createKey(key)
		for name, fv := range values {
			value, err := decodeFileValue(fv)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrStoreUnavailable, "invalid value %q under %s", name, keyText)
			}
			if err := f.mem.SetValue(key, name, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Path returns the backing file location.
func (f *File) Path() string { return f.path }

func decodeFileValue(fv fileValue) (regvalue.TypedValue, error) {
	if fv.Type == regvalue.KindString || fv.Type == "" {
		return regvalue.StringValue(fv.Data), nil
	}
	v, err := regvalue.Decode(fv.Data)
	if err != nil {
		return nil, err
	}
	if v.Kind() != fv.Type {
		return nil, errors.Newf(errors.ErrMalformedLiteral, "value %q is not of type %s", fv.Data, fv.Type)
	}
	return v, nil
}

func (f *File) save() error {
	doc := fileDocument{Keys: make(map[string]map[string]fileValue)}
	for key, values := range f.mem.snapshot() {
		entries := make(map[string]fileValue, len(values))
		for name, v := range values {
			entries[name] = fileValue{Type: v.Kind(), Data: regvalue.Encode(v)}
		}
		doc.Keys[key] = entries
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrStoreUnavailable, "failed to encode store")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to create store directory")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to write store file %s", tmp)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, errors.ErrStoreUnavailable, "failed to replace store file %s", f.path)
	}
	return nil
}

// SetValue implements Store.
func (f *File) SetValue(key regpath.ResolvedPath, name string, value regvalue.TypedValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.SetValue(key, name, value); err != nil {
		return err
	}
	return f.save()
}

// GetValue implements Store.
func (f *File) GetValue(key regpath.ResolvedPath, name string) (regvalue.TypedValue, error) {
	return f.mem.GetValue(key, name)
}

// DeleteValue implements Store.
func (f *File) DeleteValue(key regpath.ResolvedPath, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.DeleteValue(key, name); err != nil {
		return err
	}
	return f.save()
}

// DeleteKey implements Store.
func (f *File) DeleteKey(key regpath.ResolvedPath) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.DeleteKey(key); err != nil {
		return err
	}
	return f.save()
}

// KeyExists implements Store.
func (f *File) KeyExists(key regpath.ResolvedPath) (bool, error) {
	return f.mem.KeyExists(key)
}
