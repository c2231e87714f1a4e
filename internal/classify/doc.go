// Package classify assigns alignment discrepancies to error categories.
//
// Character edits map directly onto substitution, deletion and insertion
// counters. Word blocks go through a priority chain of heuristics: word
// merge, word split, abbreviation/expansion and lexical substitution, with
// residual word deletion/insertion buckets for the remaining one-sided blocks.
//
// All thresholds live in Thresholds so callers can tune them from
// configuration. The predicates are pure functions and never fail.
package classify
