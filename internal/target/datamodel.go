// Package target describes the platforms a primitive table is checked
// against: C data models for C-spelled descriptors and the fixed-width Go
// types the generator emits.
package target

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/primgen/internal/ir"
	"github.com/roach88/primgen/pkg/bitops"
)

// ErrUnknownRepresentation is returned when a descriptor cannot be resolved.
var ErrUnknownRepresentation = errors.New("unknown representation")

// DataModel gives the byte widths of the C integer types on a target ABI.
type DataModel struct {
	Name       string
	Short      int
	Int        int
	Long       int
	LongLong   int
	Pointer    int
	CharSigned bool // signedness of plain char
}

// Built-in data models.
var (
	// ILP32 is the 32-bit embedded model (arm-none-eabi); plain char is unsigned.
	ILP32 = DataModel{Name: "ilp32", Short: 2, Int: 4, Long: 4, LongLong: 8, Pointer: 4, CharSigned: false}
	// LP64 is the 64-bit Unix model (x86-64 System V).
	LP64 = DataModel{Name: "lp64", Short: 2, Int: 4, Long: 8, LongLong: 8, Pointer: 8, CharSigned: true}
	// LLP64 is the 64-bit Windows model.
	LLP64 = DataModel{Name: "llp64", Short: 2, Int: 4, Long: 4, LongLong: 8, Pointer: 8, CharSigned: true}
)

var dataModels = map[string]DataModel{
	ILP32.Name: ILP32,
	LP64.Name:  LP64,
	LLP64.Name: LLP64,
}

// LookupDataModel returns the named data model. Names are case-insensitive.
func LookupDataModel(name string) (DataModel, bool) {
	m, ok := dataModels[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// DataModelNames lists the known data model names in sorted order.
func DataModelNames() []string {
	names := make([]string, 0, len(dataModels))
	for name := range dataModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sizedPattern matches Go-style sized spellings: uint8, int24, float64 ...
var sizedPattern = regexp.MustCompile(`^(uint|int|float)([0-9]+)$`)

// Resolve maps an underlying descriptor to a representation.
//
// Sized spellings (uint16, int64, float32, and uintN/intN/floatN for any
// multiple of 8) are independent of the data model. Every other spelling is
// read as a C type name and sized by the model, so "unsigned long" is 4 bytes
// under ILP32 and 8 under LP64. Bare "int" is the C int.
func (m DataModel) Resolve(underlying string) (ir.Representation, error) {
	fields := strings.Fields(strings.ToLower(underlying))
	if len(fields) == 0 {
		return ir.Representation{}, fmt.Errorf("%w: empty descriptor", ErrUnknownRepresentation)
	}

	if len(fields) == 1 {
		switch fields[0] {
		case "byte":
			return ir.Representation{Category: ir.CategoryUnsigned, Bytes: 1}, nil
		case "float":
			return ir.Representation{Category: ir.CategoryFloat, Bytes: 4}, nil
		case "double":
			return ir.Representation{Category: ir.CategoryFloat, Bytes: 8}, nil
		}
		if match := sizedPattern.FindStringSubmatch(fields[0]); match != nil {
			return resolveSized(underlying, match[1], match[2])
		}
	}

	return m.resolveC(underlying, fields)
}

func resolveSized(underlying, kind, digits string) (ir.Representation, error) {
	bits, err := strconv.Atoi(digits)
	if err != nil || bits <= 0 || bits%8 != 0 {
		return ir.Representation{}, fmt.Errorf("%w: %q: bit width must be a positive multiple of 8", ErrUnknownRepresentation, underlying)
	}
	rep := ir.Representation{Bytes: bits / 8}
	switch kind {
	case "uint":
		rep.Category = ir.CategoryUnsigned
	case "int":
		rep.Category = ir.CategorySigned
	case "float":
		rep.Category = ir.CategoryFloat
	}
	return rep, nil
}

// resolveC sizes a C integer type name such as "unsigned long long int".
func (m DataModel) resolveC(underlying string, fields []string) (ir.Representation, error) {
	var signed, unsigned, chars, shorts, ints, longs int
	for _, f := range fields {
		switch f {
		case "signed":
			signed++
		case "unsigned":
			unsigned++
		case "char":
			chars++
		case "short":
			shorts++
		case "int":
			ints++
		case "long":
			longs++
		default:
			return ir.Representation{}, fmt.Errorf("%w: %q: unexpected %q", ErrUnknownRepresentation, underlying, f)
		}
	}

	invalid := func(reason string) (ir.Representation, error) {
		return ir.Representation{}, fmt.Errorf("%w: %q: %s", ErrUnknownRepresentation, underlying, reason)
	}
	switch {
	case signed+unsigned > 1:
		return invalid("conflicting or repeated signedness")
	case ints > 1 || chars > 1 || shorts > 1 || longs > 2:
		return invalid("repeated type specifier")
	case chars > 0 && (shorts > 0 || longs > 0 || ints > 0):
		return invalid("char cannot be combined with short, long or int")
	case shorts > 0 && longs > 0:
		return invalid("short cannot be combined with long")
	}

	rep := ir.Representation{Category: ir.CategorySigned}
	if unsigned > 0 {
		rep.Category = ir.CategoryUnsigned
	}
	switch {
	case chars > 0:
		rep.Bytes = 1
		if signed+unsigned == 0 && !m.CharSigned {
			rep.Category = ir.CategoryUnsigned
		}
	case shorts > 0:
		rep.Bytes = m.Short
	case longs == 2:
		rep.Bytes = m.LongLong
	case longs == 1:
		rep.Bytes = m.Long
	default:
		rep.Bytes = m.Int
	}
	return rep, nil
}

// goTypes maps each representation the Go language provides to its type name.
var goTypes = map[ir.Representation]string{
	{Category: ir.CategoryUnsigned, Bytes: 1}: "uint8",
	{Category: ir.CategoryUnsigned, Bytes: 2}: "uint16",
	{Category: ir.CategoryUnsigned, Bytes: 4}: "uint32",
	{Category: ir.CategoryUnsigned, Bytes: 8}: "uint64",
	{Category: ir.CategorySigned, Bytes: 1}:   "int8",
	{Category: ir.CategorySigned, Bytes: 2}:   "int16",
	{Category: ir.CategorySigned, Bytes: 4}:   "int32",
	{Category: ir.CategorySigned, Bytes: 8}:   "int64",
	{Category: ir.CategoryFloat, Bytes: 4}:    "float32",
	{Category: ir.CategoryFloat, Bytes: 8}:    "float64",
}

// GoType returns the fixed-width Go type for a representation. Only power of
// two widths up to the 8-byte word exist.
func GoType(rep ir.Representation) (string, bool) {
	if !bitops.IsPow2(rep.Bytes) || rep.Bytes > 8 {
		return "", false
	}
	name, ok := goTypes[rep]
	return name, ok
}
