package attribute

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the descriptor file looked up when LoadFile is given a
// directory.
const DefaultFileName = "attributes.yaml"

// Config is the YAML form of a descriptor registry.
//
//	key_case: camel
//	types:
//	  authors:
//	    fields:
//	      - name: firstName
//	      - name: age
//	        numeric: true
//	      - name: fullName
//	        persist: false
type Config struct {
	// KeyCase applies to every type without its own key_case.
	KeyCase string `yaml:"key_case,omitempty"`

	Types map[string]TypeConfig `yaml:"types"`
}

// TypeConfig declares the fields of one resource type.
type TypeConfig struct {
	KeyCase string        `yaml:"key_case,omitempty"`
	Fields  []FieldConfig `yaml:"fields"`
}

// FieldConfig declares one field. Persist defaults to true.
type FieldConfig struct {
	Name    string `yaml:"name"`
	Persist *bool  `yaml:"persist,omitempty"`
	Numeric bool   `yaml:"numeric,omitempty"`

	// Key, when set, is written verbatim instead of applying the key case.
	Key string `yaml:"key,omitempty"`
}

// Registry builds a DefaultRegistry from the configuration.
func (c *Config) Registry() (*DefaultRegistry, error) {
	defaultCase, err := ParseKeyCase(c.KeyCase)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for typeName, tc := range c.Types {
		if typeName == "" {
			return nil, fmt.Errorf("resource type name cannot be empty")
		}
		keyCase := defaultCase
		if tc.KeyCase != "" {
			if keyCase, err = ParseKeyCase(tc.KeyCase); err != nil {
				return nil, fmt.Errorf("type %q: %w", typeName, err)
			}
		}

		table := NewTable(keyCase)
		for i, fc := range tc.Fields {
			if fc.Name == "" {
				return nil, fmt.Errorf("type %q: field %d has no name", typeName, i)
			}
			d := Descriptor{
				Name:    fc.Name,
				Persist: fc.Persist == nil || *fc.Persist,
				Numeric: fc.Numeric,
			}
			if fc.Key != "" {
				key := fc.Key
				d.Key = func(string) string { return key }
			}
			table.Add(d)
		}
		reg.Register(typeName, table)
	}
	return reg, nil
}

// LoadYAML decodes a descriptor configuration and builds its registry.
func LoadYAML(r io.Reader) (*DefaultRegistry, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse attribute config: %w", err)
	}
	return cfg.Registry()
}

// LoadFile reads a descriptor configuration from path. If path is a
// directory, DefaultFileName inside it is used.
func LoadFile(path string) (*DefaultRegistry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attribute config: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}
