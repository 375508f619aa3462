// Package codegen turns a validated primitive table into Go source: one type
// declaration per row, optional min/max constants, and a compile-time width
// assertion for every row.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/primgen/internal/compiler"
	"github.com/roach88/primgen/internal/ir"
	"github.com/roach88/primgen/internal/target"
)

// SlowPassThreshold is the duration above which a generation pass logs a warning.
const SlowPassThreshold = 50 * time.Millisecond

// DefaultPackage is the package clause used when Options.Package is empty.
const DefaultPackage = "primitives"

// Options controls the emitted file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source names the table in the generated header. Defaults to the base
	// name of the table's source path.
	Source string
	// Clock times the pass for the slow-pass warning. Defaults to time.Now.
	Clock func() time.Time
}

// Decl is the emitted form of one table row.
type Decl struct {
	Row     ir.PrimitiveSpec
	Ident   string
	GoType  string
	Defined bool // distinct defined type rather than an alias
	Min     string
	Max     string
}

// HasMinMax reports whether the declaration carries range constants.
func (d Decl) HasMinMax() bool {
	return d.Min != ""
}

// Size is the declared width in bytes.
func (d Decl) Size() int {
	return d.Row.SizeBytes
}

// Doc is the doc comment text of the type declaration. The descriptor is
// written with single spaces so it stays on one comment line.
func (d Decl) Doc() string {
	descriptor := strings.Join(strings.Fields(d.Row.Underlying), " ")
	if d.Defined {
		return fmt.Sprintf("%s is a bit container of size %d (%s). It does not mix with integer types without a conversion.",
			d.Ident, d.Row.SizeBytes, descriptor)
	}
	var kind string
	switch d.Row.Family().Category() {
	case ir.CategoryUnsigned:
		kind = "an unsigned integer"
	case ir.CategorySigned:
		kind = "a signed integer"
	case ir.CategoryFloat:
		kind = "a floating-point number"
	}
	return fmt.Sprintf("%s is %s of size %d (%s).", d.Ident, kind, d.Row.SizeBytes, descriptor)
}

// Result is the outcome of a generation pass. Source is nil unless every row
// succeeded.
type Result struct {
	Decls  []Decl
	Errors []*WidthMismatchError
	Source []byte
}

// ranges gives the natural limits of each Go representation.
var ranges = map[string][2]string{
	"uint8":   {"0", "math.MaxUint8"},
	"uint16":  {"0", "math.MaxUint16"},
	"uint32":  {"0", "math.MaxUint32"},
	"uint64":  {"0", "math.MaxUint64"},
	"int8":    {"math.MinInt8", "math.MaxInt8"},
	"int16":   {"math.MinInt16", "math.MaxInt16"},
	"int32":   {"math.MinInt32", "math.MaxInt32"},
	"int64":   {"math.MinInt64", "math.MaxInt64"},
	"float32": {"-math.MaxFloat32", "math.MaxFloat32"},
	"float64": {"-math.MaxFloat64", "math.MaxFloat64"},
}

var titler = cases.Title(language.Und, cases.NoLower)

// Ident returns the exported Go identifier for a table name.
func Ident(name string) string {
	return titler.String(name)
}

// Generate emits Go source for table.
//
// Rows are processed independently, in table order. A row whose
// representation does not have its declared width is recorded in
// Result.Errors and generation continues with the next row; if any row
// failed, Result.Source stays nil and the returned error joins every
// mismatch. Identical inputs produce byte-identical output.
func Generate(table *ir.Table, opts Options) (*Result, error) {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	start := now()

	if verrs := compiler.Validate(table); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, errors.Join(errs...))
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !token.IsIdentifier(pkg) || pkg == "_" {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	modelName := table.DataModel
	if modelName == "" {
		modelName = ir.DefaultDataModel
	}
	// Validation guarantees the model exists.
	model, _ := target.LookupDataModel(modelName)

	result := &Result{}
	needsMath := false
	for _, row := range table.Rows {
		decl, mismatch := declare(row, model)
		if mismatch != nil {
			slog.Debug("width mismatch", "name", row.Name, "declared", row.SizeBytes, "actual", mismatch.Actual)
			result.Errors = append(result.Errors, mismatch)
			continue
		}
		if decl.HasMinMax() {
			needsMath = true
		}
		slog.Debug("emitted primitive", "name", row.Name, "ident", decl.Ident, "go_type", decl.GoType, "defined", decl.Defined)
		result.Decls = append(result.Decls, decl)
	}

	defer func() {
		if elapsed := now().Sub(start); elapsed > SlowPassThreshold {
			slog.Warn("slow generation pass", "source", table.Source, "rows", len(table.Rows), "elapsed", elapsed)
		}
	}()

	if len(result.Errors) > 0 {
		errs := make([]error, len(result.Errors))
		for i, e := range result.Errors {
			errs[i] = e
		}
		return result, errors.Join(errs...)
	}

	source := opts.Source
	if source == "" {
		source = sourceName(table.Source)
	}

	var buf bytes.Buffer
	data := fileData{Source: source, Package: pkg, NeedsMath: needsMath, Decls: result.Decls}
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return result, fmt.Errorf("rendering %s: %w", source, err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return result, fmt.Errorf("formatting generated source: %w", err)
	}
	result.Source = formatted

	return result, nil
}

// declare resolves one row. The width check mirrors the compile-time
// assertion: the resolved width must equal the declared size and a Go type of
// that category and width must exist.
func declare(row ir.PrimitiveSpec, model target.DataModel) (Decl, *WidthMismatchError) {
	rep, err := model.Resolve(row.Underlying)
	if err != nil {
		// Unreachable for validated tables.
		return Decl{}, &WidthMismatchError{
			Name: row.Name, Underlying: row.Underlying, DataModel: model.Name,
			Category: row.Family().Category(), Declared: row.SizeBytes, Origin: row.Origin,
		}
	}
	mismatch := &WidthMismatchError{
		Name:       row.Name,
		Underlying: row.Underlying,
		DataModel:  model.Name,
		Category:   rep.Category,
		Declared:   row.SizeBytes,
		Actual:     rep.Bytes,
		Origin:     row.Origin,
	}
	if rep.Bytes != row.SizeBytes {
		return Decl{}, mismatch
	}
	goType, ok := target.GoType(rep)
	if !ok {
		return Decl{}, mismatch
	}

	decl := Decl{
		Row:     row,
		Ident:   Ident(row.Name),
		GoType:  goType,
		Defined: row.Family() == ir.FamilyBits,
	}
	if row.HasMinMax {
		r := ranges[goType]
		decl.Min, decl.Max = r[0], r[1]
	}
	return decl, nil
}

func sourceName(path string) string {
	if path == "" {
		return "table"
	}
	return filepath.ToSlash(filepath.Base(path))
}
