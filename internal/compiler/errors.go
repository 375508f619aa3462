package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"

	"github.com/roach88/primgen/internal/ir"
)

// CompileError is a load or schema error in a table file.
type CompileError struct {
	Field   string
	Message string
	Origin  ir.Origin
}

func (e *CompileError) Error() string {
	if e.Origin.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Origin, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Origin:  ir.Origin{File: positions[0].Filename(), Line: positions[0].Line()},
		}
	}

	return &CompileError{Field: "cue", Message: firstErr.Error()}
}
