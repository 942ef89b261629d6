package types

import (
	"sort"
	"strings"
)

// Field names used in operator documents. The remaining document keys are
// either sections (anything ending in SectionSuffix) or ignored.
const (
	FieldName        = "operator_name"
	FieldVersion     = "operator_version"
	FieldDescription = "operator_description"
	FieldAuthor      = "operator_author"
	FieldTags        = "operator_tags"
	FieldExtends     = "extends"
	FieldTheme       = "theme"

	// SectionSuffix marks a top-level document key as a configuration
	// section: "shell_config" becomes section "shell".
	SectionSuffix = "_config"
)

// BaseOperator is the implicit root of every inheritance chain. When no
// operator with this name exists in the store, the resolver synthesizes an
// empty one instead of failing.
const BaseOperator = "base"

// Definition is one operator as loaded from its vars.yml document.
// Definitions are value snapshots: the resolver never mutates them, and the
// store hands out a fresh copy per Get.
type Definition struct {
	// Name is the operator name (usually the directory name).
	Name string

	// Version is the declared operator version.
	Version string

	// Description is the human-readable summary.
	Description string

	// Author is the declared author, if any.
	Author string

	// Tags classify the operator.
	Tags []string

	// Extends names the parent operator, or is empty for chain roots.
	Extends string

	// Theme names the theme operator overlaid during resolution, or is
	// empty when the operator declares none.
	Theme string

	// Sections holds the configuration sections keyed by section name
	// ("shell", "tmux", ...), each a free-form mapping.
	Sections map[string]map[string]any

	// Raw is the full decoded document, kept for validation so findings
	// can reference the concrete field paths. Raw is nil only on the
	// resolver's synthesized base root.
	Raw map[string]any
}

// Synthesized reports whether the definition was fabricated by the resolver
// rather than loaded from a document. Only the implicit base root is ever
// synthesized.
func (d *Definition) Synthesized() bool {
	return d.Raw == nil
}

// SectionName reports whether key names a configuration section, and if so
// the section name with the suffix stripped.
func SectionName(key string) (string, bool) {
	name := strings.TrimSuffix(key, SectionSuffix)
	if name == key || name == "" {
		return "", false
	}
	return name, true
}

// SectionNames returns the definition's section names in sorted order.
func (d *Definition) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for name := range d.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSection reports whether the definition declares the named section.
func (d *Definition) HasSection(name string) bool {
	_, ok := d.Sections[name]
	return ok
}

// IsRoot reports whether the definition ends an inheritance chain.
func (d *Definition) IsRoot() bool {
	return d.Extends == ""
}
