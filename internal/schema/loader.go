package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed iis.yaml
var defaultDocument []byte

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the embedded IIS grammar. It is parsed once; callers must not modify it.
func Default() (*Schema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Parse(defaultDocument)
	})

	return defaultSchema, defaultErr
}

// LoadFile loads and checks a grammar document from the given path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Schema and checks it for consistency.
func Parse(data []byte) (*Schema, error) {
	var s Schema

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&s)

	if diags := Check(&s); diags.HasErrors() {
		return nil, fmt.Errorf("inconsistent schema: %w", diags.Error())
	}

	return &s, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(s *Schema) {
	if s.Version == "" {
		s.Version = "1"
	}

	for name, spec := range s.Elements {
		if spec == nil {
			spec = &ElementSpec{}
			s.Elements[name] = spec
		}

		spec.Name = name
	}
}
