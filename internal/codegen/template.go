package codegen

import "text/template"

var fileTemplate = template.Must(template.New("primitives").Parse(`// Code generated by primgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

{{if .NeedsMath}}import (
	"math"
	"unsafe"
)
{{else}}import "unsafe"
{{end}}
{{- range .Decls}}

// {{.Doc}}
{{if .Defined}}type {{.Ident}} {{.GoType}}{{else}}type {{.Ident}} = {{.GoType}}{{end}}
{{- if .HasMinMax}}

// {{.Ident}}Min and {{.Ident}}Max bound {{.Ident}}.
const (
	{{.Ident}}Min {{.Ident}} = {{.Min}}
	{{.Ident}}Max {{.Ident}} = {{.Max}}
)
{{- end}}
{{- end}}

// An invalid array index here means a primitive no longer has its declared
// width. Regenerate with go generate.
func _() {
	var x [1]struct{}
{{- range .Decls}}
	_ = x[unsafe.Sizeof({{.Ident}}(0))-{{.Size}}]
{{- end}}
}
`))

type fileData struct {
	Source    string
	Package   string
	NeedsMath bool
	Decls     []Decl
}
