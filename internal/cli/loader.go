package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/primgen/internal/compiler"
	"github.com/roach88/primgen/internal/ir"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeScanError     = "E002" // Directory scan error
	ErrCodeNoFiles       = "E003" // No table file found
	ErrCodeLoadFailed    = "E004" // Table load failed
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeBuildFailed   = "E006" // CUE build or schema check failed
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeMultipleFiles = "E008" // Directory holds more than one table file

	ErrCodeWidthMismatch = "E200" // Declared size differs from representation width
)

// LoadError represents an error that occurred while locating or loading a table.
type LoadError struct {
	Code    string
	Message string
	Origin  ir.Origin // source position if available
}

func (e *LoadError) Error() string {
	if e.Origin.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Origin, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResolveTablePath returns the table file named by path. A directory must
// hold exactly one table file at its top level.
func ResolveTablePath(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("table not found: %s", path)}
	}
	if err != nil {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing table: %v", err)}
	}

	if !info.IsDir() {
		if !compiler.IsTableFile(path) {
			return "", &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("not a table file (want .cue, .yaml or .yml): %s", path)}
		}
		return path, nil
	}

	files, err := FindTableFiles(path)
	if err != nil {
		return "", &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	switch len(files) {
	case 0:
		return "", &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no table file found in %s", path)}
	case 1:
		return files[0], nil
	default:
		return "", &LoadError{Code: ErrCodeMultipleFiles, Message: fmt.Sprintf("multiple table files in %s: %v", path, files)}
	}
}

// FindTableFiles returns the table files directly inside dir, sorted.
func FindTableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && compiler.IsTableFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadTable resolves and compiles the table at path. A non-empty dataModel
// replaces the table's own, lower-cased.
func LoadTable(path, dataModel string) (*ir.Table, error) {
	file, err := ResolveTablePath(path)
	if err != nil {
		return nil, err
	}

	table, err := compiler.CompileFile(file)
	if err != nil {
		return nil, convertCompileError(err)
	}
	if dataModel = strings.ToLower(strings.TrimSpace(dataModel)); dataModel != "" {
		table.DataModel = dataModel
	}
	return table, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		code := ErrCodeLoadFailed
		if compileErr.Field == "cue" {
			code = ErrCodeBuildFailed
		}
		return &LoadError{
			Code:    code,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Origin:  compileErr.Origin,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// outputLoadError reports a load failure. Load failures are command-level
// errors (exit code 2).
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var details any
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code, message = loadErr.Code, loadErr.Message
		if loadErr.Origin.IsValid() {
			details = loadErr.Origin
			message = fmt.Sprintf("%s: %s", loadErr.Origin, loadErr.Message)
		}
	}
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
