package matcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAlternatives is returned when a switch is built from zero entries.
	ErrNoAlternatives = errors.New("at least one alternative required")

	// ErrIncompatibleOptions is returned when a sub-pattern was compiled with
	// engine options (RightToLeft, ECMAScript, RE2) that differ from the
	// switch's and cannot be expressed inline.
	ErrIncompatibleOptions = errors.New("sub-pattern options incompatible with switch options")
)

// ConstructionError reports why a switch could not be built.
type ConstructionError struct {
	// Index of the offending alternative, or -1 when the failure is not
	// attributable to a single alternative.
	Index int
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("failed to build switch: alternative %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("failed to build switch: %v", e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
