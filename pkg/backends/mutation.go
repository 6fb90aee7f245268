package backends

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
	"github.com/arthur-debert/winregi/pkg/regpath"
	"github.com/arthur-debert/winregi/pkg/regstore"
	"github.com/arthur-debert/winregi/pkg/regvalue"
	"github.com/arthur-debert/winregi/pkg/types"
)

// Mutation applies "path=literal" and "path-" commands to a store.
type Mutation struct {
	store regstore.Store
}

// NewMutation returns the registry backend writing to store.
func NewMutation(store regstore.Store) *Mutation {
	return &Mutation{store: store}
}

func (m *Mutation) Backend() types.Backend { return types.Mutation }

// Execute parses text and applies it. The timeout is not used: store calls
// do not block on anything but the store itself.
func (m *Mutation) Execute(_ context.Context, text string, _ time.Duration) (string, error) {
	cmd, err := regpath.ParseCommand(text)
	if err != nil {
		return "", err
	}
	if cmd.Delete {
		return m.delete(cmd.Path)
	}
	return m.set(cmd)
}

func (m *Mutation) set(cmd regpath.Command) (string, error) {
	logger := logging.GetLogger("backends.mutation")

	value, err := regvalue.Decode(cmd.Literal)
	if err != nil {
		return "", err
	}
	key, name := cmd.SetTarget()

	logger.Debug().
		Str("key", key.String()).
		Str("value", name).
		Str("type", string(value.Kind())).
		Msg("Setting registry value")

	if err := m.store.SetValue(key, name, value); err != nil {
		return "", err
	}
	return fmt.Sprintf("Set %s = %s (%s)", key.WithValue(name), regvalue.Encode(value), value.Kind()), nil
}

// delete removes an explicit value, or tries the last segment as a value of
// its parent before removing the key itself. Missing targets succeed; a key
// that still has subkeys fails with ErrKeyHasSubkeys.
func (m *Mutation) delete(path regpath.ResolvedPath) (string, error) {
	logger := logging.GetLogger("backends.mutation").With().Str("path", path.String()).Logger()

	if path.HasValueName() {
		err := m.store.DeleteValue(path.Key(), path.Value())
		switch {
		case err == nil:
			return fmt.Sprintf("Deleted value %s", path), nil
		case errors.IsErrorCode(err, errors.ErrNotFound):
			logger.Debug().Msg("Value already absent")
			return fmt.Sprintf("Value %s not found, nothing to delete", path), nil
		default:
			return "", err
		}
	}

	if parent, ok := path.Parent(); ok {
		err := m.store.DeleteValue(parent, path.Leaf())
		if err == nil {
			return fmt.Sprintf("Deleted value %s", parent.WithValue(path.Leaf())), nil
		}
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			return "", err
		}
	}

	err := m.store.DeleteKey(path)
	switch {
	case err == nil:
		return fmt.Sprintf("Deleted key %s", path), nil
	case errors.IsErrorCode(err, errors.ErrNotFound):
		logger.Debug().Msg("Key already absent")
		return fmt.Sprintf("%s not found, nothing to delete", path), nil
	default:
		return "", err
	}
}
