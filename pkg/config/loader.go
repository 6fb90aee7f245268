package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/winregi/pkg/errors"
	"github.com/arthur-debert/winregi/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WINREGI_"

// userConfigNames are searched, in order, under the XDG config directories.
var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// Load builds the effective configuration. An explicit path must exist;
// without one the XDG config directories are searched.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a last layer of dotted keys on top of the
// environment.
func LoadWithOverrides(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	userPath, err := resolveUserPath(path)
	if err != nil {
		return nil, err
	}
	if userPath != "" {
		parser, err := parserFor(userPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(userPath), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath).
				WithDetail("path", userPath)
		}
		log.Debug().Str("path", userPath).Msg("Loaded user configuration")
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return decode(k)
}

// ParseOverrides turns "section.key=value" pairs into an overrides map.
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "override %q must be key=value", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := decode(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcessConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func postProcessConfig(cfg *Config) {
	if cfg.Store.File == "" {
		cfg.Store.File = filepath.Join(xdg.DataHome, logging.AppName, "registry.yaml")
	}
	if cfg.Catalog.File == "" {
		cfg.Catalog.File = filepath.Join(xdg.ConfigHome, logging.AppName, "actions.toml")
	}
	cfg.Validation.ExtraDenyPatterns = compact(cfg.Validation.ExtraDenyPatterns)
	cfg.Privilege.ExtraKeywords = compact(cfg.Privilege.ExtraKeywords)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resolveUserPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", path).
				WithDetail("path", path)
		}
		return path, nil
	}
	for _, name := range userConfigNames {
		if found, err := xdg.SearchConfigFile(filepath.Join(logging.AppName, name)); err == nil {
			return found, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// envKey maps WINREGI_SECTION_KEY to section.key. Interpreter overrides carry
// the platform as a second level: WINREGI_INTERPRETERS_WINDOWS_SCRIPT_EXT.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	if section == "interpreters" {
		if goos, key, ok := strings.Cut(rest, "_"); ok {
			return section + "." + goos + "." + key
		}
	}
	return section + "." + rest
}
