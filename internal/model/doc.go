// Package model defines the core data structures used throughout htrdiff.
//
// This package contains the following main types:
//   - CharEdit / WordEdit: single steps of a character or word alignment
//   - Category: the closed set of error categories a discrepancy falls into
//   - Stats: per-category counters with one field per category
//   - SubstitutionCounter: (reference rune, hypothesis rune) frequency table
//   - PageResult / Result: per-page partial results and the run accumulator
//   - Document: an input transcription, optionally pre-split into pages
//
// All models serialize to JSON for report output and database storage.
package model
