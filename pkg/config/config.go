package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config declares the controllers of an application and the renderers each
// one opts into.
type Config struct {
	Logging     Logging      `json:"logging" yaml:"logging"`
	Controllers []Controller `json:"controllers" yaml:"controllers"`
}

// Logging selects the logger level and output format.
type Logging struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Controller is one opt-in declaration. A controller with a parent starts
// from the parent's renderer set; All opts into the whole catalog before the
// listed renderers are applied.
type Controller struct {
	Name      string   `json:"name" yaml:"name"`
	Parent    string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	All       bool     `json:"all,omitempty" yaml:"all,omitempty"`
	Renderers []string `json:"renderers,omitempty" yaml:"renderers,omitempty"`
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS reads and parses the document at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, fmt.Errorf("config: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Load parses a JSON or YAML document and validates it. source only labels
// error messages.
func Load(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode yaml: %w", err)
	}
	return out, nil
}

// Validate checks controller names are unique and non-empty, every parent is
// declared and the parent chain has no cycles.
func (c Config) Validate() error {
	byName := make(map[string]Controller, len(c.Controllers))
	for idx, ctrl := range c.Controllers {
		name := strings.TrimSpace(ctrl.Name)
		if name == "" {
			return fmt.Errorf("controller #%d has no name", idx+1)
		}
		if _, exists := byName[name]; exists {
			return fmt.Errorf("duplicate controller %q", name)
		}
		byName[name] = ctrl
	}

	for _, ctrl := range c.Controllers {
		seen := map[string]struct{}{ctrl.Name: {}}
		for parent := ctrl.Parent; parent != ""; parent = byName[parent].Parent {
			if _, ok := byName[parent]; !ok {
				return fmt.Errorf("controller %q references unknown parent %q", ctrl.Name, parent)
			}
			if _, loop := seen[parent]; loop {
				return fmt.Errorf("controller %q has a parent cycle through %q", ctrl.Name, parent)
			}
			seen[parent] = struct{}{}
		}
	}
	return nil
}

func (c *Config) normalise() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	for idx := range c.Controllers {
		ctrl := &c.Controllers[idx]
		ctrl.Name = strings.TrimSpace(ctrl.Name)
		ctrl.Parent = strings.TrimSpace(ctrl.Parent)
		var names []string
		for _, name := range ctrl.Renderers {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		ctrl.Renderers = names
	}
}
