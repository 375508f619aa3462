package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/primgen/internal/codegen"
	"github.com/roach88/primgen/internal/compiler"
	"github.com/roach88/primgen/internal/ir"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output    string // output file path; stdout when empty
	Package   string
	DataModel string
}

// GenerationResult summarises a successful generation.
type GenerationResult struct {
	Source     string   `json:"source" yaml:"source"`
	Output     string   `json:"output,omitempty" yaml:"output,omitempty"`
	Package    string   `json:"package" yaml:"package"`
	DataModel  string   `json:"data_model" yaml:"data_model"`
	TableID    string   `json:"table_id" yaml:"table_id"`
	Primitives []string `json:"primitives" yaml:"primitives"`
	Code       string   `json:"code,omitempty" yaml:"code,omitempty"` // set when not writing a file
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <table>",
		Short: "Generate Go primitive declarations from a table",
		Long: `Generate Go primitive declarations from a table.

Each row becomes a type declaration (an alias, or a distinct type for bit
containers), min/max constants when requested, and a compile-time width
assertion. If any row's representation does not have its declared width the
command reports every such row and writes nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.Package, "package", codegen.DefaultPackage, "package clause of the generated file")
	cmd.Flags().StringVar(&opts.DataModel, "data-model", "", "C data model used to size descriptors (ilp32|lp64|llp64; default: the table's)")

	return cmd
}

func runGenerate(opts *GenerateOptions, path string, cmd *cobra.Command) error {
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

	result, err := codegen.Generate(table, codegen.Options{Package: opts.Package})
	if err != nil {
		if errors.Is(err, codegen.ErrWidthMismatch) {
			return outputWidthMismatches(formatter, result.Errors)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "generation failed", err)
	}
	for _, d := range result.Decls {
		formatter.VerboseLog("Generated %s = %s", d.Ident, d.GoType)
	}

	summary := GenerationResult{
		Source:    table.Source,
		Output:    opts.Output,
		Package:   opts.Package,
		DataModel: table.DataModel,
		TableID:   ir.MustTableID(table).String(),
	}
	for _, d := range result.Decls {
		summary.Primitives = append(summary.Primitives, d.Ident)
	}

	if opts.Output == "" {
		if !formatter.Structured() {
			_, err := formatter.Writer.Write(result.Source)
			return err
		}
		summary.Code = string(result.Source)
		return formatter.Success(summary)
	}

	if err := os.WriteFile(opts.Output, result.Source, 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
	}

	if formatter.Structured() {
		return formatter.Success(summary)
	}
	fmt.Fprintln(formatter.Writer, formatter.OK(fmt.Sprintf("Generated %d primitive(s) from %s", len(result.Decls), table.Source)))
	fmt.Fprintf(formatter.Writer, "Wrote %s\n", opts.Output)
	return nil
}

// widthMismatchDetail is the structured form of one width mismatch.
type widthMismatchDetail struct {
	Name       string `json:"name" yaml:"name"`
	Underlying string `json:"underlying" yaml:"underlying"`
	Declared   int    `json:"declared" yaml:"declared"`
	Actual     int    `json:"actual" yaml:"actual"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message    string `json:"message" yaml:"message"`
}

// outputWidthMismatches reports every failing row. Width mismatches are
// command errors (exit code 2); nothing is written.
func outputWidthMismatches(formatter *OutputFormatter, errs []*codegen.WidthMismatchError) error {
	if formatter.Structured() {
		details := make([]widthMismatchDetail, len(errs))
		for i, e := range errs {
			details[i] = widthMismatchDetail{
				Name:       e.Name,
				Underlying: e.Underlying,
				Declared:   e.Declared,
				Actual:     e.Actual,
				Line:       e.Origin.Line,
				Message:    e.Error(),
			}
		}
		response := CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    ErrCodeWidthMismatch,
				Message: errs[0].Error(),
				Details: details,
			},
		}
		if err := formatter.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("generation failed with %d width mismatch(es)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, formatter.Fail("Generation failed"))
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", ErrCodeWidthMismatch, e.Error())
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("generation failed with %d width mismatch(es)", len(errs)))
}
