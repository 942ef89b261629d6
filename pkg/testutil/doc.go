// Package testutil provides utilities for testing neosetup components.
//
// Key components:
//   - MemoryFS: In-memory filesystem implementation for fast, isolated tests
//   - MemoryStore: In-memory operator store without filesystem operations
//   - WriteOperator: Inline operator fixture setup on any types.FS
//
// Usage guidelines:
//   - Tests should use MemoryFS; only pkg/filesystem touches the real disk
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
