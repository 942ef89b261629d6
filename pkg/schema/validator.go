package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/merge"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// Validator checks operator documents and merged configurations against a
// schema. It is stateless apart from the schema and safe for concurrent use.
type Validator struct {
	schema *Schema
	logger zerolog.Logger
}

// New creates a validator for the given schema.
func New(s *Schema) *Validator {
	return &Validator{
		schema: s,
		logger: logging.GetLogger("schema.validator"),
	}
}

// NewDefault creates a validator using the embedded schema.
func NewDefault() (*Validator, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// MustDefault is NewDefault for callers that treat a broken embedded
// schema as a build defect. It panics instead of returning an error.
func MustDefault() *Validator {
	v, err := NewDefault()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateDefinition checks a single operator document before merging:
// required metadata, metadata field rules, the operator_name/directory
// agreement, and every configuration section.
func (v *Validator) ValidateDefinition(def *types.Definition) []Finding {
	var findings []Finding

	for _, field := range v.schema.Metadata.RequiredFields {
		if _, ok := def.Raw[field]; !ok {
			findings = append(findings, Finding{
				Path:       field,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("Required field '%s' is missing", field),
				Suggestion: fmt.Sprintf("Add '%s: <value>' to your operator configuration", field),
			})
		}
	}

	for _, field := range sortedKeys(v.schema.Metadata.FieldTypes) {
		value, ok := def.Raw[field]
		if !ok {
			continue
		}
		rule := v.schema.Metadata.FieldTypes[field]
		findings = append(findings, v.validateField(field, value, &rule)...)
	}

	if rawName, ok := def.Raw[types.FieldName].(string); ok && def.Name != "" && rawName != def.Name {
		findings = append(findings, Finding{
			Path:       types.FieldName,
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Field 'operator_name' is %q but the operator directory is %q", rawName, def.Name),
			Suggestion: "Rename the directory or fix 'operator_name'",
		})
	}

	// Section blocks must be mappings. Malformed ones never make it into
	// def.Sections, so they are caught here from the raw document.
	for _, key := range sortedKeys(def.Raw) {
		if _, ok := types.SectionName(key); !ok {
			continue
		}
		value := def.Raw[key]
		if value == nil || merge.KindOf(value) == merge.KindMapping {
			continue
		}
		findings = append(findings, Finding{
			Path:     key,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Section '%s' must be a mapping, got %s", key, valueTypeName(value)),
		})
	}

	findings = append(findings, v.validateSections(def.Sections)...)

	v.logger.Trace().
		Str("operator", def.Name).
		Int("findings", len(findings)).
		Msg("Validated definition")

	return findings
}

// ValidateResolved checks a merged section map. Metadata is not rechecked;
// it comes verbatim from the leaf, which was validated before merging.
func (v *Validator) ValidateResolved(sections map[string]map[string]interface{}) []Finding {
	return v.validateSections(sections)
}

func (v *Validator) validateSections(sections map[string]map[string]interface{}) []Finding {
	var findings []Finding

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		docKey := name + types.SectionSuffix
		sectionSchema, ok := v.schema.Sections[name]
		if !ok {
			findings = append(findings, Finding{
				Path:     docKey,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("Section '%s' is not covered by the validation schema", docKey),
			})
			continue
		}

		section := sections[name]
		for _, field := range sortedKeys(section) {
			rule, known := sectionSchema.FieldTypes[field]
			if !known {
				continue
			}
			findings = append(findings, v.validateField(docKey+"."+field, section[field], &rule)...)
		}
	}

	return findings
}

// validateField applies one rule to one value, recursing into array items
// and mapping properties. Null values are treated as absent.
func (v *Validator) validateField(path string, value interface{}, rule *FieldRule) []Finding {
	if value == nil {
		return nil
	}

	var findings []Finding

	// Type validation. A mismatch makes the remaining checks meaningless,
	// so it short-circuits.
	if rule.Type != "" && !typeMatches(value, rule.Type) {
		return []Finding{{
			Path:     path,
			Severity: SeverityError,
			Message: fmt.Sprintf("Field '%s' must be %s, got %s",
				path, article(rule.Type), valueTypeName(value)),
		}}
	}

	// Pattern validation for strings
	if s, ok := value.(string); ok && rule.Pattern != "" {
		if re := v.schema.pattern(rule.Pattern); re != nil && !re.MatchString(s) {
			findings = append(findings, Finding{
				Path:       path,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("Field '%s' value '%s' doesn't match required pattern", path, s),
				Suggestion: fmt.Sprintf("Pattern: %s", rule.Pattern),
			})
		}
	}

	// Length validation
	if s, ok := value.(string); ok && rule.MaxLength > 0 && len(s) > rule.MaxLength {
		findings = append(findings, Finding{
			Path:     path,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Field '%s' exceeds maximum length of %d", path, rule.MaxLength),
		})
	}

	// Enum validation
	if s, ok := value.(string); ok && len(rule.Enum) > 0 && !containsString(rule.Enum, s) {
		findings = append(findings, Finding{
			Path:     path,
			Severity: SeverityError,
			Message: fmt.Sprintf("Field '%s' value '%s' not in allowed values: [%s]",
				path, s, strings.Join(rule.Enum, ", ")),
		})
	}

	// Numeric bounds
	if n, ok := numberOf(value); ok {
		if rule.Min != nil && n < *rule.Min {
			findings = append(findings, Finding{
				Path:     path,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Field '%s' value %v is below minimum %v", path, value, *rule.Min),
			})
		}
		if rule.Max != nil && n > *rule.Max {
			findings = append(findings, Finding{
				Path:     path,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Field '%s' value %v is above maximum %v", path, value, *rule.Max),
			})
		}
	}

	// Array validation
	if items, ok := merge.AsSequence(value); ok {
		if rule.MaxItems > 0 && len(items) > rule.MaxItems {
			findings = append(findings, Finding{
				Path:     path,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Field '%s' has %d items, maximum allowed: %d", path, len(items), rule.MaxItems),
			})
		} else if rule.RecommendedItems > 0 && len(items) > rule.RecommendedItems {
			findings = append(findings, Finding{
				Path:     path,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("Field '%s' has %d items, recommended maximum: %d",
					path, len(items), rule.RecommendedItems),
				Suggestion: rule.Advice,
			})
		}

		if rule.Items != nil {
			for i, item := range items {
				findings = append(findings,
					v.validateField(fmt.Sprintf("%s[%d]", path, i), item, rule.Items)...)
			}
		}
	}

	// Mapping validation
	if m, ok := merge.AsMapping(value); ok {
		for _, key := range rule.RequiredKeys {
			if _, present := m[key]; !present {
				findings = append(findings, Finding{
					Path:     path,
					Severity: SeverityError,
					Message:  fmt.Sprintf("Field '%s' is missing required key '%s'", path, key),
				})
			}
		}

		if len(rule.Properties) > 0 {
			for _, key := range sortedKeys(m) {
				propRule, known := rule.Properties[key]
				if !known {
					continue
				}
				findings = append(findings, v.validateField(path+"."+key, m[key], &propRule)...)
			}
		}
	}

	return findings
}

// typeMatches reports whether a decoded YAML value satisfies a schema type.
func typeMatches(value interface{}, schemaType string) bool {
	switch schemaType {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		return isInteger(value)
	case "number":
		_, ok := numberOf(value)
		return ok
	case "array":
		return merge.KindOf(value) == merge.KindSequence
	case "mapping":
		return merge.KindOf(value) == merge.KindMapping
	default:
		return true
	}
}

func isInteger(value interface{}) bool {
	switch n := value.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	default:
		return false
	}
}

func numberOf(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func valueTypeName(value interface{}) string {
	switch merge.KindOf(value) {
	case merge.KindMapping:
		return "mapping"
	case merge.KindSequence:
		return "array"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64, uint, uint32, uint64:
		return "integer"
	case float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func article(noun string) string {
	if noun == "" {
		return noun
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	default:
		return "a " + noun
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
