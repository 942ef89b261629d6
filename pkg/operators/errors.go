package operators

import (
	"fmt"
)

// NotFoundError reports a request for an operator name that is not present
// in the store.
type NotFoundError struct {
	// Name is the operator that was requested.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("operator %q not found", e.Name)
}
