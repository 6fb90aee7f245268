package regstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regvalue"
)

type memValue struct {
	name  string
	value regvalue.TypedValue
}

type memKey struct {
	name     string
	children map[string]*memKey
	values   map[string]memValue
}

func newMemKey(name string) *memKey {
	return &memKey{
		name:     name,
		children: make(map[string]*memKey),
		values:   make(map[string]memValue),
	}
}

func fold(name string) string { return strings.ToLower(name) }

// Memory is an in-process Store. It is safe for concurrent use; the mutex is
// the only serialization concurrent executions get on a shared path.
type Memory struct {
	mu    sync.RWMutex
	roots map[regpath.Root]*memKey
}

// NewMemory returns an empty store with the five predefined roots.
func NewMemory() *Memory {
	m := &Memory{roots: make(map[regpath.Root]*memKey)}
	for _, root := range regpath.AllRoots() {
		m.roots[root] = newMemKey(root.LongName())
	}
	return m
}

func (m *Memory) lookup(key regpath.ResolvedPath) *memKey {
	node := m.roots[key.Root]
	for _, segment := range key.Segments {
		if node == nil {
			return nil
		}
		node = node.children[fold(segment)]
	}
	return node
}

func (m *Memory) ensure(key regpath.ResolvedPath) *memKey {
	node := m.roots[key.Root]
	for _, segment := range key.Segments {
		child, ok := node.children[fold(segment)]
		if !ok {
			child = newMemKey(segment)
			node.children[fold(segment)] = child
		}
		node = child
	}
	return node
}

func copyValue(v regvalue.TypedValue) regvalue.TypedValue {
	if b, ok := v.(regvalue.BinaryValue); ok {
		out := make(regvalue.BinaryValue, len(b))
		copy(out, b)
		return out
	}
	return v
}

// SetValue implements Store.
func (m *Memory) SetValue(key regpath.ResolvedPath, name string, value regvalue.TypedValue) error {
	if value == nil {
		return errors.New(errors.ErrInvalidInput, "nil registry value")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.roots[key.Root]; !ok {
		return errors.Newf(errors.ErrInvalidRoot, "invalid registry root %d", int(key.Root))
	}
	node := m.ensure(key)
	node.values[fold(name)] = memValue{name: name, value: copyValue(value)}
	return nil
}

// GetValue implements Store.
func (m *Memory) GetValue(key regpath.ResolvedPath, name string) (regvalue.TypedValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node := m.lookup(key)
	if node == nil {
		return nil, notFound("key", key)
	}
	v, ok := node.values[fold(name)]
	if !ok {
		return nil, notFound("value", key.WithValue(name))
	}
	return copyValue(v.value), nil
}

// DeleteValue implements Store.
func (m *Memory) DeleteValue(key regpath.ResolvedPath, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node := m.lookup(key)
	if node == nil {
		return notFound("key", key)
	}
	if _, ok := node.values[fold(name)]; !ok {
		return notFound("value", key.WithValue(name))
	}
	delete(node.values, fold(name))
	return nil
}

// DeleteKey implements Store. Predefined roots cannot be deleted.
func (m *Memory) DeleteKey(key regpath.ResolvedPath) error {
	parentPath, ok := key.Parent()
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "cannot delete predefined root %s", key.Root)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parent := m.lookup(parentPath)
	if parent == nil {
		return notFound("key", key)
	}
	node, ok := parent.children[fold(key.Leaf())]
	if !ok {
		return notFound("key", key)
	}
	if len(node.children) > 0 {
		return hasSubkeys(key)
	}
	delete(parent.children, fold(key.Leaf()))
	return nil
}

// KeyExists implements Store.
func (m *Memory) KeyExists(key regpath.ResolvedPath) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(key) != nil, nil
}

// snapshot flattens the tree into key path -> values, including keys without
// values so empty keys survive persistence.
func (m *Memory) snapshot() map[string]map[string]regvalue.TypedValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]map[string]regvalue.TypedValue)
	for _, root := range regpath.AllRoots() {
		var walk func(node *memKey, segments []string)
		walk = func(node *memKey, segments []string) {
			if len(segments) > 0 || len(node.values) > 0 {
				values := make(map[string]regvalue.TypedValue, len(node.values))
				for _, v := range node.values {
					values[v.name] = copyValue(v.value)
				}
				out[regpath.ResolvedPath{Root: root, Segments: segments}.String()] = values
			}
			names := make([]string, 0, len(node.children))
			for k := range node.children {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				child := node.children[k]
				next := append(append([]string{}, segments...), child.name)
				walk(child, next)
			}
		}
		walk(m.roots[root], nil)
	}
	return out
}

// createKey creates key without writing a value.
func (m *Memory) createKey(key regpath.ResolvedPath) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(key)
}
