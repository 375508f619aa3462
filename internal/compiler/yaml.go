package compiler

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/primgen/internal/ir"
)

// yamlRow mirrors a table row; pointers detect missing fields.
type yamlRow struct {
	Name       *string `yaml:"name"`
	Underlying *string `yaml:"underlying"`
	Size       *int    `yaml:"size"`
	MinMax     *bool   `yaml:"minmax"`
}

var (
	yamlTableKeys = []string{"data_model", "primitives"}
	yamlRowKeys   = []string{"name", "underlying", "size", "minmax"}
)

// CompileYAML compiles a YAML table. It applies the same shape rules as the
// CUE schema: closed rows, all four fields required, primitives required.
func CompileYAML(data []byte, filename string) (*ir.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &CompileError{Field: "yaml", Message: err.Error(), Origin: ir.Origin{File: filename}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &CompileError{Field: "primitives", Message: "primitives is required", Origin: ir.Origin{File: filename}}
	}

	root := doc.Content[0]
	at := func(n *yaml.Node) ir.Origin {
		return ir.Origin{File: filename, Line: n.Line}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &CompileError{Field: "yaml", Message: "table must be a mapping", Origin: at(root)}
	}
	if err := checkKeys(root, yamlTableKeys, "", at); err != nil {
		return nil, err
	}

	table := &ir.Table{DataModel: ir.DefaultDataModel, Source: filename}

	if dm := mappingValue(root, "data_model"); dm != nil {
		if err := dm.Decode(&table.DataModel); err != nil {
			return nil, &CompileError{Field: "data_model", Message: err.Error(), Origin: at(dm)}
		}
	}

	prims := mappingValue(root, "primitives")
	if prims == nil {
		return nil, &CompileError{Field: "primitives", Message: "primitives is required", Origin: at(root)}
	}
	if prims.Kind != yaml.SequenceNode {
		return nil, &CompileError{Field: "primitives", Message: "primitives must be a list", Origin: at(prims)}
	}

	for i, n := range prims.Content {
		field := fmt.Sprintf("primitives[%d]", i)
		if n.Kind != yaml.MappingNode {
			return nil, &CompileError{Field: field, Message: "row must be a mapping", Origin: at(n)}
		}
		if err := checkKeys(n, yamlRowKeys, field+".", at); err != nil {
			return nil, err
		}

		var raw yamlRow
		if err := n.Decode(&raw); err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Origin: at(n)}
		}
		var missing []string
		if raw.Name == nil {
			missing = append(missing, "name")
		}
		if raw.Underlying == nil {
			missing = append(missing, "underlying")
		}
		if raw.Size == nil {
			missing = append(missing, "size")
		}
		if raw.MinMax == nil {
			missing = append(missing, "minmax")
		}
		if len(missing) > 0 {
			return nil, &CompileError{
				Field:   field,
				Message: "missing required field(s): " + strings.Join(missing, ", "),
				Origin:  at(n),
			}
		}

		table.Rows = append(table.Rows, ir.PrimitiveSpec{
			Name:       *raw.Name,
			Underlying: *raw.Underlying,
			SizeBytes:  *raw.Size,
			HasMinMax:  *raw.MinMax,
			Origin:     at(n),
		})
	}

	return table, nil
}

// mappingValue returns the value node for key, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// checkKeys rejects keys outside allowed and keys given more than once.
func checkKeys(m *yaml.Node, allowed []string, prefix string, at func(*yaml.Node) ir.Origin) error {
	seen := make(map[string]int, len(allowed))
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if line, dup := seen[k.Value]; dup {
			return &CompileError{
				Field:   prefix + k.Value,
				Message: fmt.Sprintf("field already defined at line %d", line),
				Origin:  at(k),
			}
		}
		seen[k.Value] = k.Line
		known := false
		for _, a := range allowed {
			if k.Value == a {
				known = true
				break
			}
		}
		if !known {
			return &CompileError{
				Field:   prefix + k.Value,
				Message: fmt.Sprintf("field not allowed (expected one of: %s)", strings.Join(allowed, ", ")),
				Origin:  at(k),
			}
		}
	}
	return nil
}
