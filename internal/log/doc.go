// Package log provides the structured logger used across htrdiff,
// built on top of the standard slog package.
//
// Log attributes frequently carry transcription text: page contents,
// token spans and error contexts. A single page can run to thousands of
// characters and contains line breaks that would tear a text log apart.
// The ClipHandler shortens such values before they reach the output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("page aligned",
//	    "page", 3,
//	    "ref", refText, // clipped to DefaultMaxValueRunes runes, newlines escaped
//	)
//
//	slog.SetDefault(logger)
package log
