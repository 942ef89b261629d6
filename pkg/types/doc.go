// Package types defines the shared data types for neosetup: operator
// definitions, the store and filesystem interfaces, and reference kinds.
//
// Keeping these in a leaf package avoids import cycles between the store,
// resolver, and rendering layers, all of which exchange Definitions.
package types
