// Package apply writes rendered artifacts to their destination.
//
// Writes go through a staged synthfs pipeline: directories first, then
// backups of the files being replaced, then the artifacts themselves.
// Destinations are confined to the home directory and the neosetup data
// directories, and an existing file that neosetup did not generate is never
// replaced without force. Dry-run mode reports the full plan and writes
// nothing.
package apply
