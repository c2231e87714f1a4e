package pipeline

import "errors"

// ErrMissingInput is returned when the reference or hypothesis document
// cannot be found. The run produces an empty result set.
var ErrMissingInput = errors.New("missing input document")
