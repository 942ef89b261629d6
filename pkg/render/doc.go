// Package render turns a resolved operator configuration into the files it
// describes: a shell rc, a tmux.conf, and a Brewfile.
//
// Each configuration section has a SectionRenderer that decodes the merged
// section into a typed view and executes an embedded template. Renderers
// register themselves at init; sections without a renderer (docker, or any
// unknown section) produce no artifact. Output is deterministic for a given
// resolved configuration: artifacts come back sorted by section and the
// templates never embed timestamps.
package render
