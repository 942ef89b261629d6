// Package config loads neosetup's application settings.
//
// Settings layer in fixed order: embedded defaults, then the user's
// .neosetup.toml, then NEOSETUP_* environment variables. Later layers win.
// Environment keys nest with a double underscore, so
// NEOSETUP_OPERATORS__ROOT sets operators.root while
// NEOSETUP_DEFAULT_OPERATOR sets default_operator.
//
// These are application settings only. Operator documents are a separate
// vocabulary owned by pkg/operators and pkg/schema.
package config
