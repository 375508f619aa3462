package compiler

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/roach88/primgen/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// TableExtensions lists the file extensions CompileFile accepts.
var TableExtensions = []string{".cue", ".yaml", ".yml"}

// IsTableFile reports whether path has a table file extension.
func IsTableFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range TableExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CompileFile reads and compiles a CUE or YAML table file, chosen by extension.
func CompileFile(path string) (*ir.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return CompileCUEBytes(data, path)
	case ".yaml", ".yml":
		return CompileYAML(data, path)
	default:
		return nil, &CompileError{Field: "file", Message: fmt.Sprintf("unsupported table file extension %q", filepath.Ext(path))}
	}
}

// CompileCUEBytes compiles CUE source, checks it against the table schema and
// converts it to a Table.
func CompileCUEBytes(data []byte, filename string) (*ir.Table, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileCUE(ctx, v, filename)
}

// CompileCUE converts a CUE value holding a table into a Table.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The value must have the top-level shape of a table file, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`primitives: [{name: "u8", underlying: "uint8", size: 1, minmax: true}]`)
//	table, err := CompileCUE(v, "inline.cue")
func CompileCUE(v cue.Value, source string) (*ir.Table, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileCUE(v.Context(), v, source)
}

func compileCUE(ctx *cue.Context, v cue.Value, source string) (*ir.Table, error) {
	primitivesVal := v.LookupPath(cue.ParsePath("primitives"))
	if !primitivesVal.Exists() {
		return nil, &CompileError{
			Field:   "primitives",
			Message: "primitives is required",
			Origin:  originOf(v.Pos()),
		}
	}

	// Schema check on the unified value; extraction below reads the raw value
	// so row origins point into the table file, not the schema.
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling table schema: %w", err)
	}
	if err := schema.LookupPath(cue.ParsePath("#Table")).Unify(v).Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	table := &ir.Table{DataModel: ir.DefaultDataModel, Source: source}

	if dm := v.LookupPath(cue.ParsePath("data_model")); dm.Exists() {
		model, err := dm.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		table.DataModel = model
	}

	iter, err := primitivesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		row, err := parseCUERow(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// parseCUERow reads one schema-checked row.
func parseCUERow(v cue.Value, index int) (ir.PrimitiveSpec, error) {
	row := ir.PrimitiveSpec{Origin: originOf(v.Pos())}

	var err error
	if row.Name, err = v.LookupPath(cue.ParsePath("name")).String(); err != nil {
		return row, formatCUEError(err)
	}
	if row.Underlying, err = v.LookupPath(cue.ParsePath("underlying")).String(); err != nil {
		return row, formatCUEError(err)
	}
	size, err := v.LookupPath(cue.ParsePath("size")).Int64()
	if err != nil {
		return row, formatCUEError(err)
	}
	if size < -1<<31 || size > 1<<31-1 {
		return row, &CompileError{
			Field:   fmt.Sprintf("primitives[%d].size", index),
			Message: fmt.Sprintf("size %d out of range", size),
			Origin:  row.Origin,
		}
	}
	row.SizeBytes = int(size)
	if row.HasMinMax, err = v.LookupPath(cue.ParsePath("minmax")).Bool(); err != nil {
		return row, formatCUEError(err)
	}

	return row, nil
}

func originOf(pos token.Pos) ir.Origin {
	if !pos.IsValid() {
		return ir.Origin{}
	}
	return ir.Origin{File: pos.Filename(), Line: pos.Line()}
}
