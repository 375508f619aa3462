package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/primgen/internal/ir"
)

// standardTable is the firmware vocabulary: four families, fourteen rows.
func standardTable() *ir.Table {
	return &ir.Table{
		DataModel: "ilp32",
		Rows: []ir.PrimitiveSpec{
			{Name: "u8", Underlying: "unsigned char", SizeBytes: 1, HasMinMax: true},
			{Name: "u16", Underlying: "unsigned short", SizeBytes: 2, HasMinMax: true},
			{Name: "u32", Underlying: "unsigned", SizeBytes: 4, HasMinMax: true},
			{Name: "u64", Underlying: "unsigned long long", SizeBytes: 8, HasMinMax: true},
			{Name: "i8", Underlying: "signed char", SizeBytes: 1, HasMinMax: true},
			{Name: "i16", Underlying: "signed short", SizeBytes: 2, HasMinMax: true},
			{Name: "i32", Underlying: "signed", SizeBytes: 4, HasMinMax: true},
			{Name: "i64", Underlying: "signed long long", SizeBytes: 8, HasMinMax: true},
			{Name: "b8", Underlying: "signed char", SizeBytes: 1},
			{Name: "b16", Underlying: "signed short", SizeBytes: 2},
			{Name: "b32", Underlying: "signed", SizeBytes: 4},
			{Name: "b64", Underlying: "signed long long", SizeBytes: 8},
			{Name: "f32", Underlying: "float", SizeBytes: 4, HasMinMax: true},
			{Name: "f64", Underlying: "double", SizeBytes: 8, HasMinMax: true},
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

// =============================================================================
// Table Validation Tests
// =============================================================================

func TestValidateStandardTable(t *testing.T) {
	errs := Validate(standardTable())
	assert.Empty(t, errs, "standard table should have no errors")
}

func TestValidateDefaultDataModel(t *testing.T) {
	table := standardTable()
	table.DataModel = ""

	assert.Empty(t, Validate(table))
}

func TestValidateSizedSpellings(t *testing.T) {
	table := &ir.Table{Rows: []ir.PrimitiveSpec{
		{Name: "u8", Underlying: "uint8", SizeBytes: 1, HasMinMax: true},
		{Name: "i64", Underlying: "int64", SizeBytes: 8, HasMinMax: true},
		{Name: "f32", Underlying: "float32", SizeBytes: 4, HasMinMax: true},
	}}

	assert.Empty(t, Validate(table))
}

func TestValidateEmptyTable(t *testing.T) {
	errs := Validate(&ir.Table{DataModel: "ilp32"})

	require.Len(t, errs, 1)
	assert.Equal(t, ErrTableEmpty, errs[0].Code)
	assert.Equal(t, "primitives", errs[0].Field)
}

func TestValidateDuplicateName(t *testing.T) {
	table := &ir.Table{Rows: []ir.PrimitiveSpec{
		{Name: "u8", Underlying: "uint8", SizeBytes: 1},
		{Name: "u8", Underlying: "unsigned char", SizeBytes: 1, Origin: ir.Origin{Line: 7}},
	}}

	errs := Validate(table)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateName, errs[0].Code)
	assert.Equal(t, "primitives[1].name", errs[0].Field)
	assert.Equal(t, 7, errs[0].Line)
	assert.Contains(t, errs[0].Message, "primitives[0]")
}

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"U8", ErrInvalidName},
		{"u-8", ErrInvalidName},
		{"8u", ErrInvalidName},
		{"", ErrInvalidName},
		{"x8", ErrUnknownFamily},
		{"s32", ErrUnknownFamily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &ir.Table{Rows: []ir.PrimitiveSpec{
				{Name: tt.name, Underlying: "uint8", SizeBytes: 1},
			}}
			errs := Validate(table)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.code, errs[0].Code)
		})
	}
}

func TestValidateSizeRange(t *testing.T) {
	for _, size := range []int{0, -1, 9, 16} {
		table := &ir.Table{Rows: []ir.PrimitiveSpec{
			{Name: "u64", Underlying: "uint64", SizeBytes: size},
		}}
		errs := Validate(table)
		require.Len(t, errs, 1, "size %d", size)
		assert.Equal(t, ErrSizeOutOfRange, errs[0].Code)
		assert.Equal(t, "primitives[0].size", errs[0].Field)
	}
}

func TestValidateSizeThreeIsNotAValidationError(t *testing.T) {
	// A 3-byte row passes validation; the generator reports it as a width mismatch.
	table := &ir.Table{Rows: []ir.PrimitiveSpec{
		{Name: "u24", Underlying: "uint24", SizeBytes: 3, HasMinMax: true},
	}}

	assert.Empty(t, Validate(table))
}

func TestValidateUnknownUnderlying(t *testing.T) {
	table := &ir.Table{Rows: []ir.PrimitiveSpec{
		{Name: "u8", Underlying: "unsigned banana", SizeBytes: 1},
		{Name: "u16", Underlying: "uint12", SizeBytes: 2},
		{Name: "u32", Underlying: "", SizeBytes: 4},
	}}

	errs := Validate(table)
	assert.Equal(t, []string{ErrUnknownUnderlying, ErrUnknownUnderlying, ErrUnknownUnderlying}, codes(errs))
}

func TestValidateCategoryMismatch(t *testing.T) {
	tests := []struct {
		name       string
		row        string
		underlying string
	}{
		{"unsigned_as_signed", "i32", "unsigned"},
		{"signed_as_unsigned", "u32", "signed"},
		{"float_as_int", "i32", "float"},
		{"int_as_float", "f64", "signed long long"},
		{"unsigned_bits", "b8", "unsigned char"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &ir.Table{Rows: []ir.PrimitiveSpec{
				{Name: tt.row, Underlying: tt.underlying, SizeBytes: 4},
			}}
			errs := Validate(table)
			assert.Contains(t, codes(errs), ErrCategoryMismatch)
		})
	}
}

func TestValidatePlainCharDependsOnDataModel(t *testing.T) {
	table := &ir.Table{DataModel: "ilp32", Rows: []ir.PrimitiveSpec{
		{Name: "u8", Underlying: "char", SizeBytes: 1, HasMinMax: true},
	}}
	assert.Empty(t, Validate(table), "plain char is unsigned on arm")

	table.DataModel = "lp64"
	errs := Validate(table)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCategoryMismatch, errs[0].Code)
}

func TestValidateUnknownDataModel(t *testing.T) {
	table := standardTable()
	table.DataModel = "pdp11"

	errs := Validate(table)
	require.Len(t, errs, 1, "descriptor checks are skipped without a data model")
	assert.Equal(t, ErrUnknownDataModel, errs[0].Code)
	assert.Contains(t, errs[0].Message, "ilp32, llp64, lp64")
}

func TestValidateMinMaxOnBitsAllowed(t *testing.T) {
	table := &ir.Table{Rows: []ir.PrimitiveSpec{
		{Name: "b32", Underlying: "signed", SizeBytes: 4, HasMinMax: true},
	}}

	assert.Empty(t, Validate(table))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	table := &ir.Table{DataModel: "ilp32", Rows: []ir.PrimitiveSpec{
		{Name: "u8", Underlying: "unsigned char", SizeBytes: 1, HasMinMax: true},
		{Name: "u8", Underlying: "unsigned char", SizeBytes: 1},
		{Name: "q8", Underlying: "unsigned char", SizeBytes: 1},
		{Name: "i16", Underlying: "signed short", SizeBytes: 12},
		{Name: "b16", Underlying: "signed short", SizeBytes: 2, HasMinMax: true},
		{Name: "f32", Underlying: "long", SizeBytes: 4},
	}}

	errs := Validate(table)
	assert.Equal(t, []string{
		ErrDuplicateName,
		ErrUnknownFamily,
		ErrSizeOutOfRange,
		ErrCategoryMismatch,
	}, codes(errs))
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "primitives[2].size", Message: "size 9 outside 1..8", Code: ErrSizeOutOfRange, Line: 4}
	assert.Equal(t, "[E124] line 4: primitives[2].size: size 9 outside 1..8", err.Error())

	err.Line = 0
	assert.Equal(t, "[E124] primitives[2].size: size 9 outside 1..8", err.Error())
}
