package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallYAML = `data_model: lp64
primitives:
  - {name: u8, underlying: unsigned char, size: 1, minmax: true}
  - name: b32
    underlying: signed
    size: 4
    minmax: false
`

func TestCompileYAMLBasic(t *testing.T) {
	table, err := CompileYAML([]byte(smallYAML), "small.yaml")
	require.NoError(t, err)

	assert.Equal(t, "lp64", table.DataModel)
	assert.Equal(t, "small.yaml", table.Source)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "u8", table.Rows[0].Name)
	assert.Equal(t, "unsigned char", table.Rows[0].Underlying)
	assert.Equal(t, 1, table.Rows[0].SizeBytes)
	assert.True(t, table.Rows[0].HasMinMax)
	assert.Equal(t, 3, table.Rows[0].Origin.Line)
	assert.Equal(t, "small.yaml", table.Rows[0].Origin.File)

	assert.Equal(t, "b32", table.Rows[1].Name)
	assert.Equal(t, "signed", table.Rows[1].Underlying)
	assert.False(t, table.Rows[1].HasMinMax)
	assert.Equal(t, 4, table.Rows[1].Origin.Line)
}

func TestCompileYAMLDefaultDataModel(t *testing.T) {
	table, err := CompileYAML([]byte("primitives:\n  - {name: u8, underlying: uint8, size: 1, minmax: true}\n"), "t.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ilp32", table.DataModel)
}

func TestCompileYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		want  string
		line  int
	}{
		{"syntax", "primitives: [\n", "yaml", "", 0},
		{"empty_document", "", "primitives", "primitives is required", 0},
		{"not_a_mapping", "- u8\n", "yaml", "table must be a mapping", 1},
		{"missing_primitives", "data_model: ilp32\n", "primitives", "primitives is required", 1},
		{"primitives_not_list", "primitives: u8\n", "primitives", "must be a list", 1},
		{"row_not_mapping", "primitives:\n  - u8\n", "primitives[0]", "row must be a mapping", 2},
		{"unknown_table_key", "primitives: []\nendian: little\n", "endian", "field not allowed", 2},
		{"unknown_row_key", "primitives:\n  - {name: u8, underlying: uint8, size: 1, minmax: true, packed: true}\n", "primitives[0].packed", "field not allowed", 2},
		{"missing_fields", "primitives:\n  - {name: u8, underlying: uint8}\n", "primitives[0]", "size, minmax", 2},
		{"wrong_type", "primitives:\n  - {name: u8, underlying: uint8, size: one, minmax: true}\n", "primitives[0]", "", 2},
		{"duplicate_primitives", "primitives:\n  - {name: u8, underlying: uint8, size: 1, minmax: true}\nprimitives:\n  - {name: u16, underlying: uint16, size: 2, minmax: true}\n", "primitives", "already defined at line 1", 3},
		{"duplicate_data_model", "data_model: ilp32\ndata_model: lp64\nprimitives: []\n", "data_model", "already defined at line 1", 2},
		{"duplicate_row_key", "primitives:\n  - name: u8\n    name: u16\n    underlying: uint8\n    size: 1\n    minmax: true\n", "primitives[0].name", "already defined at line 2", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileYAML([]byte(tt.src), "bad.yaml")
			require.Error(t, err)

			var compileErr *CompileError
			require.True(t, errors.As(err, &compileErr), "error should be *CompileError, got %T", err)
			assert.Equal(t, tt.field, compileErr.Field)
			if tt.want != "" {
				assert.Contains(t, compileErr.Message, tt.want)
			}
			assert.Equal(t, tt.line, compileErr.Origin.Line)
		})
	}
}
