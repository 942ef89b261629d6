package operators

import (
	"github.com/arthur-debert/neosetup/pkg/merge"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// ParseDefinition builds a Definition from a decoded operator document.
// name is the store handle (the directory name); the document's own
// operator_name stays in Raw, where the validator checks it agrees.
//
// Non-mapping *_config values are not turned into sections. They remain in
// Raw and the validator reports them.
func ParseDefinition(name string, raw map[string]interface{}) *types.Definition {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	def := &types.Definition{
		Name:        name,
		Version:     stringField(raw, types.FieldVersion),
		Description: stringField(raw, types.FieldDescription),
		Author:      stringField(raw, types.FieldAuthor),
		Tags:        stringListField(raw, types.FieldTags),
		Extends:     stringField(raw, types.FieldExtends),
		Theme:       stringField(raw, types.FieldTheme),
		Sections:    map[string]map[string]interface{}{},
		Raw:         raw,
	}

	for key, value := range raw {
		section, ok := types.SectionName(key)
		if !ok {
			continue
		}
		if m, ok := merge.AsMapping(value); ok {
			def.Sections[section] = m
		}
	}

	return def
}

func stringField(raw map[string]interface{}, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

func stringListField(raw map[string]interface{}, key string) []string {
	items, ok := merge.AsSequence(raw[key])
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
