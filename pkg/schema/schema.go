// Package schema validates operator documents against a declarative schema.
//
// The schema is itself a YAML document describing the metadata fields and
// the known configuration sections: per-field type, pattern, enum, length
// and item constraints. A default schema is embedded in the binary; callers
// can load an alternative from disk.
//
// Validation never stops at the first problem. Every check appends a
// Finding, and findings come back in deterministic order: required-field
// checks in schema order, then fields sorted by path.
package schema

import (
	_ "embed"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/types"
)

//go:embed operator_schema.yml
var defaultSchema []byte

// FieldRule is the constraint set for one document field.
type FieldRule struct {
	// Type names the expected value kind: string, integer, number,
	// boolean, array or mapping. Empty means any.
	Type string `yaml:"type"`

	// Pattern is an anchored regular expression strings must match.
	Pattern string `yaml:"pattern"`

	// Enum lists the allowed values for string fields.
	Enum []string `yaml:"enum"`

	// MaxLength caps the length of string fields.
	MaxLength int `yaml:"max_length"`

	// Min and Max bound numeric fields inclusively.
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`

	// MaxItems caps array length. Exceeding it is an error.
	MaxItems int `yaml:"max_items"`

	// RecommendedItems is the advisory array length. Exceeding it is a
	// warning, with Advice as the suggestion.
	RecommendedItems int    `yaml:"recommended_items"`
	Advice           string `yaml:"advice"`

	// Items constrains each element of an array field.
	Items *FieldRule `yaml:"items"`

	// Properties constrains known keys of a mapping field, and
	// RequiredKeys lists the keys that must be present.
	Properties   map[string]FieldRule `yaml:"properties"`
	RequiredKeys []string             `yaml:"required_keys"`
}

// MetadataSchema describes the operator metadata fields.
type MetadataSchema struct {
	RequiredFields []string             `yaml:"required_fields"`
	FieldTypes     map[string]FieldRule `yaml:"field_types"`
}

// SectionSchema describes one configuration section.
type SectionSchema struct {
	FieldTypes map[string]FieldRule `yaml:"field_types"`
}

// Schema is a parsed validation schema document.
type Schema struct {
	Metadata MetadataSchema           `yaml:"operator_metadata"`
	Sections map[string]SectionSchema `yaml:"sections"`

	patterns map[string]*regexp.Regexp
}

// Default returns the schema embedded in the binary.
func Default() (*Schema, error) {
	return Parse(defaultSchema)
}

// Parse decodes and compiles a schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrSchemaLoad, "failed to parse schema document")
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a schema document from the filesystem.
func LoadFile(fs types.FS, path string) (*Schema, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSchemaLoad, "failed to read schema file %s", path)
	}
	return Parse(data)
}

// HasSection reports whether the schema covers the named section.
func (s *Schema) HasSection(name string) bool {
	_, ok := s.Sections[name]
	return ok
}

// compile precompiles every pattern in the schema so validation cannot fail
// midway on a bad regular expression.
func (s *Schema) compile() error {
	s.patterns = make(map[string]*regexp.Regexp)

	var walk func(rule *FieldRule) error
	walk = func(rule *FieldRule) error {
		if rule == nil {
			return nil
		}
		if rule.Pattern != "" {
			if _, ok := s.patterns[rule.Pattern]; !ok {
				re, err := regexp.Compile(rule.Pattern)
				if err != nil {
					return errors.Wrapf(err, errors.ErrSchemaInvalid,
						"invalid pattern %q in schema", rule.Pattern)
				}
				s.patterns[rule.Pattern] = re
			}
		}
		if err := walk(rule.Items); err != nil {
			return err
		}
		for name := range rule.Properties {
			prop := rule.Properties[name]
			if err := walk(&prop); err != nil {
				return err
			}
		}
		return nil
	}

	for name := range s.Metadata.FieldTypes {
		rule := s.Metadata.FieldTypes[name]
		if err := walk(&rule); err != nil {
			return err
		}
	}
	for _, section := range s.Sections {
		for name := range section.FieldTypes {
			rule := section.FieldTypes[name]
			if err := walk(&rule); err != nil {
				return err
			}
		}
	}
	return nil
}

// pattern returns the compiled regexp for a schema pattern.
func (s *Schema) pattern(expr string) *regexp.Regexp {
	return s.patterns[expr]
}
