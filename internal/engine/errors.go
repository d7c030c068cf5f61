package engine

import "fmt"

// ValidationError reports input that a save rejects: empty required text, a
// malformed color or date, a repeat mode the entity does not support, or a
// disabled grid cell. Nothing is mutated when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ImportError wraps anything that stops an import from being applied.
type ImportError struct {
	Err error
}

func (e ImportError) Error() string {
	return "import failed: " + e.Err.Error()
}

func (e ImportError) Unwrap() error { return e.Err }

// BoundsError is returned when navigation would leave the supported range.
type BoundsError struct {
	What  string
	Value int
	Min   int
	Max   int
}

func (e BoundsError) Error() string {
	return fmt.Sprintf("%s %d is outside %d..%d", e.What, e.Value, e.Min, e.Max)
}
