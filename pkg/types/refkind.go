package types

// RefKind distinguishes the two axes along which one operator references
// another. Error messages include it so a broken "theme" reference is not
// mistaken for a broken "extends" one.
type RefKind string

const (
	// RefExtends is the inheritance axis walked to build the ancestor chain.
	RefExtends RefKind = "extends"

	// RefTheme is the overlay axis: the leaf's declared theme operator.
	RefTheme RefKind = "theme"
)

func (k RefKind) String() string {
	return string(k)
}
