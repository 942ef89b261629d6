// Package merge implements the configuration merge rules used during
// operator resolution.
//
// Merging is directional: the destination holds values accumulated from
// earlier (more ancestral) sources and the source holds the overriding
// values. The rules per key are:
//
//   - mapping over mapping: recurse, key by key
//   - sequence over sequence: concatenate, dropping source elements already
//     present, so first appearance wins the position
//   - anything else: the source value overwrites
//
// All functions are pure. Inputs are never mutated; results share no
// structure with either input, so merged configurations can be handed out
// without aliasing the definitions they came from.
package merge

import (
	"reflect"

	"github.com/arthur-debert/neosetup/pkg/types"
)

// Kind classifies a configuration value for merge dispatch.
type Kind int

const (
	// KindAbsent marks a missing value (nil interface).
	KindAbsent Kind = iota

	// KindScalar covers strings, numbers, booleans and any other leaf value.
	KindScalar

	// KindSequence covers list values.
	KindSequence

	// KindMapping covers nested map values.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// KindOf reports the merge kind of a decoded YAML value.
func KindOf(v interface{}) Kind {
	if v == nil {
		return KindAbsent
	}
	if isMap(v) {
		return KindMapping
	}
	if isSlice(v) {
		return KindSequence
	}
	return KindScalar
}

// AsMapping returns the value as a string-keyed map, normalizing
// interface{}-keyed decodings. The second result is false when the value is
// not a mapping.
func AsMapping(v interface{}) (map[string]interface{}, bool) {
	return toStringMap(v)
}

// AsSequence returns the value as a []interface{} slice. The second result
// is false when the value is not a sequence.
func AsSequence(v interface{}) ([]interface{}, bool) {
	if !isSlice(v) {
		return nil, false
	}
	return toInterfaceSlice(v), true
}

// Maps merges src over dest and returns the result. Neither input is
// modified; missing inputs are treated as empty.
func Maps(dest, src map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(dest)+len(src))
	for key, destVal := range dest {
		out[key] = copyValue(destVal)
	}

	for key, srcVal := range src {
		destVal, destOk := out[key]
		if !destOk {
			out[key] = copyValue(srcVal)
			continue
		}

		// Merge maps
		if srcMap, srcOk := toStringMap(srcVal); srcOk {
			if destMap, destOk := toStringMap(destVal); destOk {
				out[key] = Maps(destMap, srcMap)
				continue
			}
		}

		// Concatenate slices, skipping duplicates
		if isSlice(srcVal) && isSlice(destVal) {
			out[key] = appendSlices(destVal, srcVal)
			continue
		}

		// Otherwise, overwrite
		out[key] = copyValue(srcVal)
	}

	return out
}

// Chain folds the sections of a root-to-leaf definition chain into a single
// merged section map. Later definitions override earlier ones, so the leaf
// must come last.
func Chain(defs []*types.Definition) map[string]map[string]interface{} {
	merged := map[string]map[string]interface{}{}
	for _, def := range defs {
		merged = Sections(merged, def.Sections)
	}
	return merged
}

// Sections merges src over dest section by section.
func Sections(dest, src map[string]map[string]interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(dest)+len(src))
	for name, section := range dest {
		out[name] = Maps(nil, section)
	}
	for name, section := range src {
		out[name] = Maps(out[name], section)
	}
	return out
}

// appendSlices concatenates two slice values, dropping src elements that are
// already present by deep equality. The first appearance keeps its position.
func appendSlices(dest, src interface{}) []interface{} {
	destSlice := toInterfaceSlice(dest)
	srcSlice := toInterfaceSlice(src)

	out := make([]interface{}, 0, len(destSlice)+len(srcSlice))
	for _, v := range destSlice {
		out = append(out, copyValue(v))
	}
	for _, v := range srcSlice {
		if containsValue(out, v) {
			continue
		}
		out = append(out, copyValue(v))
	}
	return out
}

func containsValue(haystack []interface{}, needle interface{}) bool {
	for _, v := range haystack {
		if reflect.DeepEqual(v, needle) {
			return true
		}
	}
	return false
}

func isMap(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		return true
	default:
		return false
	}
}

func isSlice(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []string:
		return true
	default:
		return false
	}
}

// toStringMap normalizes YAML map decodings to map[string]interface{}.
// yaml.v3 produces string keys, but documents that passed through other
// decoders can carry interface{} keys.
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func toInterfaceSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []string:
		result := make([]interface{}, len(s))
		for i, v := range s {
			result[i] = v
		}
		return result
	default:
		return []interface{}{}
	}
}

// copyValue returns a structural copy of a decoded YAML value. Scalars are
// returned as-is; maps and slices are copied recursively.
func copyValue(v interface{}) interface{} {
	if m, ok := toStringMap(v); ok {
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[k] = copyValue(val)
		}
		return out
	}
	if isSlice(v) {
		s := toInterfaceSlice(v)
		out := make([]interface{}, len(s))
		for i, val := range s {
			out[i] = copyValue(val)
		}
		return out
	}
	return v
}
