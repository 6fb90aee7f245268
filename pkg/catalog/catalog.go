// Package catalog reads the named actions the CLI can run. A catalog is a
// TOML or YAML document with one table per action under "actions":
//
//	[actions.dark-mode]
//	name = "Enable dark mode"
//	backend = "registry"
//	command = 'HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize\AppsUseLightTheme=dword:0'
//
// The catalog is read-only; editing it is left to the user's editor.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/types"
)

// Action is one catalog entry.
type Action struct {
	ID          string        `toml:"-" yaml:"-" json:"id"`
	Name        string        `toml:"name" yaml:"name" json:"name"`
	Description string        `toml:"description" yaml:"description" json:"description,omitempty"`
	Category    string        `toml:"category" yaml:"category" json:"category,omitempty"`
	Backend     types.Backend `toml:"backend" yaml:"backend" json:"backend"`
	Command     string        `toml:"command" yaml:"command" json:"command"`
	Keywords    []string      `toml:"keywords" yaml:"keywords" json:"keywords,omitempty"`
}

// Descriptor returns the engine input for a.
func (a Action) Descriptor() types.ActionDescriptor {
	return types.ActionDescriptor{Backend: a.Backend, RawText: a.Command}
}

type document struct {
	Actions map[string]Action `toml:"actions" yaml:"actions"`
}

// Catalog holds actions by id.
type Catalog struct {
	actions map[string]Action
}

// Load reads a catalog file; the format follows the extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "failed to read catalog %s", path).
			WithDetail("path", path)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	c, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "invalid catalog %s", path).
			WithDetail("path", path)
	}
	return c, nil
}

// Parse decodes a catalog in format "toml" or "yaml".
func Parse(data []byte, format string) (*Catalog, error) {
	var doc document
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCatalogLoad, "failed to decode toml catalog")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCatalogLoad, "failed to decode yaml catalog")
		}
	default:
		return nil, errors.Newf(errors.ErrCatalogLoad, "unsupported catalog format %q", format)
	}

	c := &Catalog{actions: make(map[string]Action, len(doc.Actions))}
	for id, action := range doc.Actions {
		action.ID = id
		if err := checkAction(action); err != nil {
			return nil, err
		}
		if action.Name == "" {
			action.Name = id
		}
		c.actions[id] = action
	}
	return c, nil
}

func checkAction(a Action) error {
	if !a.Backend.Valid() {
		return errors.Newf(errors.ErrCatalogLoad, "action %q has no valid backend", a.ID).
			WithDetail("action", a.ID)
	}
	if strings.TrimSpace(a.Command) == "" {
		return errors.Newf(errors.ErrCatalogLoad, "action %q has an empty command", a.ID).
			WithDetail("action", a.ID)
	}
	return nil
}

// Get returns the action with id.
func (c *Catalog) Get(id string) (Action, error) {
	a, ok := c.actions[id]
	if !ok {
		return Action{}, errors.Newf(errors.ErrActionNotFound, "no action %q in catalog", id).
			WithDetail("action", id)
	}
	return a, nil
}

// List returns every action ordered by category, then id.
func (c *Catalog) List() []Action {
	out := make([]Action, 0, len(c.actions))
	for _, a := range c.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// InCategory returns the actions whose category matches, case-insensitively.
func (c *Catalog) InCategory(category string) []Action {
	var out []Action
	for _, a := range c.List() {
		if strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.actions)
}
