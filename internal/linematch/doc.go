// Package linematch scores two transcriptions line by line.
//
// The comparison is positional and unweighted: character j of line i in one
// file is compared with character j of line i in the other. It is a quick
// sanity check for transcriptions that were exported with the same line
// breaks and is not an alignment.
package linematch
