// Package config loads the source/destination/ignore settings of a sync run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/yuya-takeyama/missing-sync/pkg/syncerr"
)

// DefaultPath is the config file looked up in the working directory when
// no path is given.
const DefaultPath = "config.json"

// Config is the explicit configuration handed to the sync engine.
type Config struct {
	Source string   `json:"source" toml:"source"`
	Dest   string   `json:"dest" toml:"dest"`
	Ignore []string `json:"ignore,omitempty" toml:"ignore"`
}

// Load reads the config file at path from fs. JSON and YAML documents are
// accepted, and files ending in .toml are decoded as TOML. Unknown fields
// are rejected. Relative source and dest paths are resolved against cwd.
func Load(fs afero.Fs, path, cwd string) (Config, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, &syncerr.ConfigError{Path: path, Err: fmt.Errorf("config file does not exist: %w", err)}
		}
		return Config{}, &syncerr.ConfigError{Path: path, Err: err}
	}

	cfg, err := decode(path, data)
	if err != nil {
		return Config{}, &syncerr.ConfigError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, &syncerr.ConfigError{Path: path, Err: err}
	}

	if cfg.Source, err = resolve(cfg.Source, cwd); err != nil {
		return Config{}, &syncerr.ConfigError{Path: path, Err: fmt.Errorf("source: %w", err)}
	}
	if cfg.Dest, err = resolve(cfg.Dest, cwd); err != nil {
		return Config{}, &syncerr.ConfigError{Path: path, Err: fmt.Errorf("dest: %w", err)}
	}

	return cfg, nil
}

func decode(path string, data []byte) (Config, error) {
	var cfg Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown field %q", undecoded[0].String())
		}
		return cfg, nil
	}

	// YAML is a superset of JSON, so this covers config.json as well.
	if err := yaml.UnmarshalStrict(data, &cfg, yaml.DisallowUnknownFields); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	return cfg, nil
}

// Validate reports missing roots and empty ignore patterns. An empty
// pattern would exclude every path.
func (c Config) Validate() error {
	if c.Source == "" {
		return errors.New("missing required field: source")
	}
	if c.Dest == "" {
		return errors.New("missing required field: dest")
	}
	for i, pattern := range c.Ignore {
		if pattern == "" {
			return fmt.Errorf("ignore[%d] is empty", i)
		}
	}
	return nil
}

func resolve(p, cwd string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(cwd, expanded)
	}
	return filepath.Clean(expanded), nil
}
