package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runValidateCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateStandardTable(t *testing.T) {
	out, err := runValidateCmd(t, "text", standardTable)
	require.NoError(t, err)
	assert.Equal(t, "✓ Table valid: 14 primitive(s), data model ilp32\n", out)
}

func TestValidateStandardTableJSON(t *testing.T) {
	out, err := runValidateCmd(t, "json", standardTable)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 14, resp.Data.Rows)
	assert.Equal(t, "ilp32", resp.Data.DataModel)
	assert.Len(t, resp.Data.TableID, 36)
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "table.yaml", "primitives:\n  - {name: f64, underlying: double, size: 8, minmax: true}\n")
	writeTable(t, dir, "README.md", "not a table")

	out, err := runValidateCmd(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Table valid: 1 primitive(s)")
}

func TestValidateNonExistentPath(t *testing.T) {
	out, err := runValidateCmd(t, "text", "/nonexistent/table.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, out, "not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateEmptyDirectory(t *testing.T) {
	out, err := runValidateCmd(t, "text", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNoFiles)
	assert.Contains(t, out, "no table file found")
}

func TestValidateMultipleTables(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "a.cue", validTable)
	writeTable(t, dir, "b.yml", "primitives: []\n")

	_, err := runValidateCmd(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeMultipleFiles)
}

func TestValidateSchemaError(t *testing.T) {
	path := writeTable(t, t.TempDir(), "bad.cue", `primitives: [{name: "u8", underlying: "uint8", size: 1}]`)

	_, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeBuildFailed)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateYAMLLoadError(t *testing.T) {
	path := writeTable(t, t.TempDir(), "bad.yaml", "primitives:\n  - {name: u8, underlying: uint8}\n")

	out, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeLoadFailed)
	assert.Contains(t, out, "bad.yaml:2")
	assert.Contains(t, out, "missing required field(s): size, minmax")
}

func TestValidateInvalidTable(t *testing.T) {
	path := writeTable(t, t.TempDir(), "invalid.cue", invalidTable)

	out, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed with 2 error(s)")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E121: primitives[1].name")
	assert.Contains(t, out, "E126: primitives[2].underlying")
	assert.Contains(t, out, "invalid.cue:3")
}

func TestValidateInvalidTableJSON(t *testing.T) {
	path := writeTable(t, t.TempDir(), "invalid.cue", invalidTable)

	out, err := runValidateCmd(t, "json", path)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 2)
	assert.Equal(t, "E121", resp.Error.Code)
	assert.Equal(t, "E126", resp.Data.Errors[1].Code)
}

func TestValidateInvalidTableYAML(t *testing.T) {
	path := writeTable(t, t.TempDir(), "invalid.cue", invalidTable)

	out, err := runValidateCmd(t, "yaml", path)
	require.Error(t, err)

	var resp struct {
		Status string `yaml:"status"`
		Data   struct {
			Valid  bool `yaml:"valid"`
			Errors []struct {
				Code string `yaml:"code"`
			} `yaml:"errors"`
		} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Len(t, resp.Data.Errors, 2)
}

func TestValidateDataModelOverride(t *testing.T) {
	path := writeTable(t, t.TempDir(), "char.cue",
		`primitives: [{name: "u8", underlying: "char", size: 1, minmax: true}]`)

	_, err := runValidateCmd(t, "text", path)
	require.NoError(t, err, "plain char is unsigned under the default ilp32")

	out, err := runValidateCmd(t, "text", path, "--data-model", "lp64")
	require.Error(t, err)
	assert.Contains(t, out, "E126")

	out, err = runValidateCmd(t, "text", path, "--data-model", "vax")
	require.Error(t, err)
	assert.Contains(t, out, "E127")
}

func TestValidateVerboseDumpsTable(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json", Verbose: true})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{filepath.Clean(standardTable)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errBuf.String(), "Loaded 14 row(s)")
	assert.Contains(t, errBuf.String(), `Underlying: (string) (len=18) "unsigned long long"`)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp), "stdout stays valid JSON")
}
