package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/primgen/internal/ir"
	"github.com/roach88/primgen/internal/target"
)

// Validation error codes (E120-E127)
const (
	ErrTableEmpty        = "E120" // at least one row required
	ErrDuplicateName     = "E121" // duplicate primitive name
	ErrInvalidName       = "E122" // name is not a lower-case identifier
	ErrUnknownFamily     = "E123" // name prefix is not u, i, b or f
	ErrSizeOutOfRange    = "E124" // size outside 1..8
	ErrUnknownUnderlying = "E125" // underlying descriptor does not resolve
	ErrCategoryMismatch  = "E126" // descriptor category disagrees with the family
	ErrUnknownDataModel  = "E127" // data model not known
)

// MaxSizeBytes is the widest primitive a table may declare.
const MaxSizeBytes = 8

// ValidationError represents a table rule violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// namePattern: lower-case ASCII identifier.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Validate checks a compiled table against the table rules.
// Returns all errors found (does not fail-fast).
func Validate(table *ir.Table) []ValidationError {
	var errs []ValidationError

	modelName := table.DataModel
	if modelName == "" {
		modelName = ir.DefaultDataModel
	}
	model, modelOK := target.LookupDataModel(modelName)
	if !modelOK {
		errs = append(errs, ValidationError{
			Field: "data_model",
			Message: fmt.Sprintf("unknown data model %q (known: %s)",
				modelName, strings.Join(target.DataModelNames(), ", ")),
			Code: ErrUnknownDataModel,
		})
	}

	// E120: at least one row required
	if len(table.Rows) == 0 {
		errs = append(errs, ValidationError{
			Field:   "primitives",
			Message: "at least one primitive is required",
			Code:    ErrTableEmpty,
		})
		return errs
	}

	seen := make(map[string]int)
	for i, row := range table.Rows {
		field := fmt.Sprintf("primitives[%d]", i)
		line := row.Origin.Line

		// E121: duplicate name
		if first, dup := seen[row.Name]; dup {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate primitive name %q (first at primitives[%d])", row.Name, first),
				Code:    ErrDuplicateName,
				Line:    line,
			})
		} else {
			seen[row.Name] = i
		}

		// E122/E123: name shape, then family prefix
		family, familyOK := ir.FamilyOf(row.Name)
		switch {
		case !namePattern.MatchString(row.Name):
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("invalid name %q: must match %s", row.Name, namePattern),
				Code:    ErrInvalidName,
				Line:    line,
			})
			familyOK = false
		case !familyOK:
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("name %q has no known family prefix (u, i, b, f)", row.Name),
				Code:    ErrUnknownFamily,
				Line:    line,
			})
		}

		// E124: size range
		if row.SizeBytes < 1 || row.SizeBytes > MaxSizeBytes {
			errs = append(errs, ValidationError{
				Field:   field + ".size",
				Message: fmt.Sprintf("size %d outside 1..%d", row.SizeBytes, MaxSizeBytes),
				Code:    ErrSizeOutOfRange,
				Line:    line,
			})
		}

		if !modelOK {
			continue
		}

		// E125/E126: descriptor resolves, and to the family's category
		rep, err := model.Resolve(row.Underlying)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".underlying",
				Message: err.Error(),
				Code:    ErrUnknownUnderlying,
				Line:    line,
			})
			continue
		}
		if familyOK && rep.Category != family.Category() {
			errs = append(errs, ValidationError{
				Field: field + ".underlying",
				Message: fmt.Sprintf("%q resolves to %s under %s, but family %q requires %s",
					row.Underlying, rep.Category, model.Name, family, family.Category()),
				Code: ErrCategoryMismatch,
				Line: line,
			})
		}
	}

	return errs
}
