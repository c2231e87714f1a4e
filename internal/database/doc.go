// Package database provides SQLite-based run history for htrdiff.
//
// Every saved run stores its category counts as plain JSON for quick
// listing, BLAKE3 fingerprints of both input documents, and the complete
// result as xz-compressed JSON so that old runs can be re-rendered and
// compared without the original files.
//
// The database is a single SQLite file in WAL mode (modernc.org/sqlite, no CGO).
package database
