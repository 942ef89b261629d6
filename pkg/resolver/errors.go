package resolver

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/neosetup/pkg/types"
)

// CircularDependencyError reports an inheritance chain that loops back on
// itself. Cycle holds the operator names in visit order, ending with the
// repeated name, so the message always shows the full path.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular operator inheritance: %s", strings.Join(e.Cycle, " -> "))
}

// MissingParentError reports a reference to an operator that does not
// exist. Kind tells which reference axis failed, extends or theme.
type MissingParentError struct {
	// Operator holds the dangling reference.
	Operator string

	// Reference is the missing operator name.
	Reference string

	// Kind is the reference axis.
	Kind types.RefKind
}

func (e *MissingParentError) Error() string {
	if e.Kind == types.RefTheme {
		return fmt.Sprintf("operator %q uses theme %q, which does not exist", e.Operator, e.Reference)
	}
	return fmt.Sprintf("operator %q extends %q, which does not exist", e.Operator, e.Reference)
}
