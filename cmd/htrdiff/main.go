// Package main provides the entry point for the htrdiff CLI.
//
// htrdiff compares a handwritten text recognition (HTR) transcription with
// a reference transcription and classifies every difference, from single
// character substitutions to merged, split, abbreviated or missing words.
//
// Usage:
//
//	htrdiff analyze <reference> <hypothesis> <output-prefix>
//	htrdiff linematch <file-a> <file-b>
//	htrdiff history list
//
// See --help for all available options.
package main

// main is the entry point for htrdiff.
func main() {
	Execute()
}
