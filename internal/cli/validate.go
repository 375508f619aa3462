package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/primgen/internal/compiler"
	"github.com/roach88/primgen/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	DataModel string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                       `json:"valid" yaml:"valid"`
	Source    string                     `json:"source,omitempty" yaml:"source,omitempty"`
	DataModel string                     `json:"data_model,omitempty" yaml:"data_model,omitempty"`
	Rows      int                        `json:"rows" yaml:"rows"`
	TableID   string                     `json:"table_id,omitempty" yaml:"table_id,omitempty"`
	Errors    []compiler.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <table>",
		Short: "Validate a primitive table without generating code",
		Long: `Validate a primitive table without generating code.

Checks the table shape, then every table rule (unique names, family prefixes,
sizes, descriptors and their categories). All violations are reported, not
just the first. Width mismatches are found by generate and list.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataModel, "data-model", "", "C data model used to size descriptors (ilp32|lp64|llp64; default: the table's)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	table, err := LoadTable(path, opts.DataModel)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d row(s) from %s", len(table.Rows), table.Source)
	formatter.VerboseDump(table)

	if errs := compiler.Validate(table); len(errs) > 0 {
		return outputValidationErrors(formatter, table, errs)
	}

	return outputValidateSuccess(formatter, table)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, table *ir.Table) error {
	if formatter.Structured() {
		result := ValidationResult{
			Valid:     true,
			Source:    table.Source,
			DataModel: table.DataModel,
			Rows:      len(table.Rows),
		}
		if id, err := ir.TableID(table); err == nil {
			result.TableID = id.String()
		}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, formatter.OK(fmt.Sprintf("Table valid: %d primitive(s), data model %s", len(table.Rows), table.DataModel)))
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, table *ir.Table, errs []compiler.ValidationError) error {
	if formatter.Structured() {
		result := ValidationResult{
			Valid:     false,
			Source:    table.Source,
			DataModel: table.DataModel,
			Rows:      len(table.Rows),
			Errors:    errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, formatter.Fail("Validation failed"))
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintln(formatter.Writer, formatter.Dim(ir.Origin{File: table.Source, Line: err.Line}.String()))
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
