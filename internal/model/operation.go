package model

import "fmt"

// Operation is the relationship between the two sides of one alignment step.
//
// String returns the one-letter tags used in the error log.
type Operation int

const (
	// OpMatch means both sides are identical.
	OpMatch Operation = iota

	// OpSubstitute means both sides are present but differ.
	OpSubstitute

	// OpDelete means content is present only in the reference.
	OpDelete

	// OpInsert means content is present only in the hypothesis.
	OpInsert
)

// String returns the legacy tag of the operation ("=", "S", "D", "I").
func (o Operation) String() string {
	switch o {
	case OpMatch:
		return "="
	case OpSubstitute:
		return "S"
	case OpDelete:
		return "D"
	case OpInsert:
		return "I"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "=":
		*o = OpMatch
	case "S":
		*o = OpSubstitute
	case "D":
		*o = OpDelete
	case "I":
		*o = OpInsert
	default:
		return fmt.Errorf("unknown operation tag %q", string(text))
	}
	return nil
}
