package codegen

import (
	"errors"
	"fmt"

	"github.com/roach88/primgen/internal/ir"
)

var (
	// ErrWidthMismatch is the only generation error: a row's declared size is
	// not the width of its representation.
	ErrWidthMismatch = errors.New("width mismatch")

	// ErrInvalidTable is returned for tables that fail validation. No row is
	// processed.
	ErrInvalidTable = errors.New("invalid primitive table")
)

// WidthMismatchError describes one row whose representation does not have
// its declared width.
type WidthMismatchError struct {
	Name       string
	Underlying string
	DataModel  string
	Category   ir.Category
	Declared   int
	Actual     int // resolved width; equals Declared when only the Go type is missing
	Origin     ir.Origin
}

func (e *WidthMismatchError) Error() string {
	var msg string
	if e.Actual != e.Declared {
		msg = fmt.Sprintf("%s: %s: %q is %d bytes under %s, declared %d",
			ErrWidthMismatch, e.Name, e.Underlying, e.Actual, e.DataModel, e.Declared)
	} else {
		msg = fmt.Sprintf("%s: %s: no %s Go type is %d bytes wide",
			ErrWidthMismatch, e.Name, e.Category, e.Declared)
	}
	if e.Origin.IsValid() {
		return e.Origin.String() + ": " + msg
	}
	return msg
}

// Is reports whether target is ErrWidthMismatch.
func (e *WidthMismatchError) Is(target error) bool {
	return target == ErrWidthMismatch
}
