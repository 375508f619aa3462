package ir

import "fmt"

// Category is the machine-level kind of a representation.
type Category string

const (
	CategoryUnsigned Category = "unsigned"
	CategorySigned   Category = "signed"
	CategoryFloat    Category = "float"
)

// Family is the semantic group of a primitive, selected by its name prefix.
type Family string

const (
	FamilyUnsigned Family = "u"
	FamilySigned   Family = "i"
	FamilyBits     Family = "b" // signed layout, not meant for arithmetic
	FamilyFloat    Family = "f"
)

// ValidFamilies lists the known families in emission-doc order.
var ValidFamilies = []Family{FamilyUnsigned, FamilySigned, FamilyBits, FamilyFloat}

// FamilyOf returns the family encoded by the first byte of name.
func FamilyOf(name string) (Family, bool) {
	if name == "" {
		return "", false
	}
	f := Family(name[:1])
	for _, valid := range ValidFamilies {
		if f == valid {
			return f, true
		}
	}
	return "", false
}

// Category returns the representation category every row of the family must use.
func (f Family) Category() Category {
	switch f {
	case FamilyUnsigned:
		return CategoryUnsigned
	case FamilySigned, FamilyBits:
		return CategorySigned
	case FamilyFloat:
		return CategoryFloat
	default:
		return ""
	}
}

// Representation is a resolved underlying descriptor: a category and a width.
type Representation struct {
	Category Category `json:"category"`
	Bytes    int      `json:"bytes"`
}

func (r Representation) String() string {
	return fmt.Sprintf("%s/%d", r.Category, r.Bytes)
}

// Origin locates a row in its source file.
type Origin struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

// IsValid reports whether the origin carries a line number.
func (o Origin) IsValid() bool {
	return o.Line > 0
}

func (o Origin) String() string {
	if o.File == "" {
		return fmt.Sprintf("line %d", o.Line)
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// PrimitiveSpec is one row of a primitive table.
type PrimitiveSpec struct {
	Name       string `json:"name" yaml:"name"`
	Underlying string `json:"underlying" yaml:"underlying"`
	SizeBytes  int    `json:"size_bytes" yaml:"size"`
	HasMinMax  bool   `json:"has_minmax" yaml:"minmax"`
	Origin     Origin `json:"origin,omitzero" yaml:"-"`
}

// Family returns the row's family, or "" when the prefix is unknown.
func (p PrimitiveSpec) Family() Family {
	f, _ := FamilyOf(p.Name)
	return f
}

// DefaultDataModel is the data model assumed when a table does not name one.
const DefaultDataModel = "ilp32"

// Table is an ordered primitive table.
type Table struct {
	DataModel string          `json:"data_model" yaml:"data_model"`
	Rows      []PrimitiveSpec `json:"rows" yaml:"primitives"`
	Source    string          `json:"source,omitempty" yaml:"-"`
}

// Lookup returns the row with the given name.
func (t *Table) Lookup(name string) (PrimitiveSpec, bool) {
	for _, row := range t.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return PrimitiveSpec{}, false
}
