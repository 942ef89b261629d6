// Package resolver turns an operator name into a single merged
// configuration.
//
// Resolution walks the extends chain from the requested operator up to the
// implicit base root, validates every definition on the way, and folds the
// chain root to leaf with pkg/merge. A theme declared by the leaf resolves
// through the same walk as an independent chain and lands between the
// ancestors and the leaf's own fields, so the precedence is always
// ancestors, then theme, then the leaf itself.
//
// Resolution never writes: stores are only read, definitions are never
// mutated, and the result owns all of its data. Concurrent Resolve calls
// are safe as long as the store tolerates concurrent reads.
package resolver
