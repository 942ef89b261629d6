// Package operators implements the definition store: loading operator
// documents from <root>/<name>/vars.yml directories into types.Definition
// values.
//
// The store is read-only and uncached. Every Get re-reads the document, so
// concurrent resolutions always observe the current on-disk state and never
// share mutable data.
package operators
