package resolver

import (
	stderrors "errors"

	"github.com/arthur-debert/neosetup/pkg/operators"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// walkChain resolves the extends ancestry of start and returns it ordered
// root first. referrer names the operator whose reference led here: empty
// for a directly requested operator (a missing start then passes the
// store's error through unchanged), otherwise a missing start becomes a
// MissingParentError of the given kind. Hops after the first always fail
// with Kind extends, since only extends references link a chain together.
func (r *Resolver) walkChain(start string, kind types.RefKind, referrer string) ([]*types.Definition, error) {
	var (
		defs  []*types.Definition
		trail []string
		seen  = map[string]bool{}
	)

	name := start
	for {
		if seen[name] {
			return nil, &CircularDependencyError{Cycle: append(trail, name)}
		}
		seen[name] = true
		trail = append(trail, name)

		def, err := r.store.Get(name)
		if err != nil {
			var notFound *operators.NotFoundError
			switch {
			case !stderrors.As(err, &notFound):
				return nil, err
			case name == types.BaseOperator:
				// The base root always resolves: leaves may extend it
				// without a base document being present.
				def = syntheticRoot()
			case referrer == "":
				return nil, err
			default:
				return nil, &MissingParentError{Operator: referrer, Reference: name, Kind: kind}
			}
		}

		defs = append(defs, def)

		if def.IsRoot() {
			break
		}
		referrer, kind = name, types.RefExtends
		name = def.Extends
	}

	// Reverse so the root merges first.
	for i, j := 0, len(defs)-1; i < j; i, j = i+1, j-1 {
		defs[i], defs[j] = defs[j], defs[i]
	}

	return defs, nil
}

// syntheticRoot builds the implicit empty base definition. It lives for one
// resolution only and is never written to the store.
func syntheticRoot() *types.Definition {
	return &types.Definition{
		Name:     types.BaseOperator,
		Sections: map[string]map[string]interface{}{},
	}
}
