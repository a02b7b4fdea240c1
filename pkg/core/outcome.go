package core

import (
	"fmt"
	"strings"
)

// Outcome is the binary classification of a launch
type Outcome int8

const (
	Failure Outcome = iota
	Success
)

// String returns the display label of the outcome
func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// Value returns the outcome as the 0/1 value plotted on the outcome axis
func (o Outcome) Value() int {
	return int(o)
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOutcome decides the outcome of a raw dataset cell. Numeric classes
// (1/0), labels (Success/Failure) and booleans are accepted.
func ParseOutcome(raw string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "success", "true":
		return Success, nil
	case "0", "0.0", "failure", "false":
		return Failure, nil
	default:
		return Failure, fmt.Errorf("%w: %q", ErrInvalidOutcome, raw)
	}
}
