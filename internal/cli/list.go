package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/primgen/internal/codegen"
	"github.com/roach88/primgen/internal/compiler"
	"github.com/roach88/primgen/internal/ir"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	DataModel string
}

// ListEntry describes one table row and what it generates.
type ListEntry struct {
	Name       string `json:"name" yaml:"name"`
	Ident      string `json:"ident" yaml:"ident"`
	Underlying string `json:"underlying" yaml:"underlying"`
	Size       int    `json:"size" yaml:"size"`
	GoType     string `json:"go_type,omitempty" yaml:"go_type,omitempty"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"` // "alias" or "defined"
	MinMax     bool   `json:"minmax" yaml:"minmax"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ListResult is the structured output of the list command.
type ListResult struct {
	Source     string      `json:"source" yaml:"source"`
	DataModel  string      `json:"data_model" yaml:"data_model"`
	Primitives []ListEntry `json:"primitives" yaml:"primitives"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <table>",
		Short: "List the primitives a table declares",
		Long: `List the primitives a table declares, in table order, with the Go type each
resolves to under the data model. Rows with a width mismatch are listed with
their error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DataModel, "data-model", "", "C data model used to size descriptors (ilp32|lp64|llp64; default: the table's)")

	return cmd
}

func runList(opts *ListOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	table, err := LoadTable(path, opts.DataModel)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseDump(table)

	if errs := compiler.Validate(table); len(errs) > 0 {
		return outputValidationErrors(formatter, table, errs)
	}

	result, genErr := codegen.Generate(table, codegen.Options{})
	if genErr != nil && !errors.Is(genErr, codegen.ErrWidthMismatch) {
		_ = formatter.Error(ErrCodeGeneric, genErr.Error(), nil)
		return WrapExitError(ExitCommandError, "listing failed", genErr)
	}

	list := ListResult{
		Source:     table.Source,
		DataModel:  table.DataModel,
		Primitives: listEntries(table, result),
	}

	if formatter.Structured() {
		if err := formatter.Success(list); err != nil {
			return err
		}
	} else {
		writeListText(formatter, list)
	}

	if len(result.Errors) > 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%d width mismatch(es)", len(result.Errors)))
	}
	return nil
}

// listEntries merges declarations and mismatches back into table order.
func listEntries(table *ir.Table, result *codegen.Result) []ListEntry {
	decls := make(map[string]codegen.Decl, len(result.Decls))
	for _, d := range result.Decls {
		decls[d.Row.Name] = d
	}
	mismatches := make(map[string]*codegen.WidthMismatchError, len(result.Errors))
	for _, e := range result.Errors {
		mismatches[e.Name] = e
	}

	entries := make([]ListEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entry := ListEntry{
			Name:       row.Name,
			Ident:      codegen.Ident(row.Name),
			Underlying: row.Underlying,
			Size:       row.SizeBytes,
			MinMax:     row.HasMinMax,
		}
		if d, ok := decls[row.Name]; ok {
			entry.GoType = d.GoType
			entry.Kind = "alias"
			if d.Defined {
				entry.Kind = "defined"
			}
		}
		if e, ok := mismatches[row.Name]; ok {
			entry.Error = e.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}

func writeListText(formatter *OutputFormatter, list ListResult) {
	fmt.Fprintf(formatter.Writer, "%s (data model %s)\n\n", list.Source, list.DataModel)

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tGO TYPE\tSIZE\tKIND\tMIN/MAX\tUNDERLYING")
	for _, e := range list.Primitives {
		goType, kind := e.GoType, e.Kind
		if e.Error != "" {
			goType, kind = "-", "mismatch"
		}
		minmax := "no"
		if e.MinMax {
			minmax = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n", e.Name, e.Ident, goType, e.Size, kind, minmax, e.Underlying)
	}
	_ = tw.Flush()

	var failed int
	for _, e := range list.Primitives {
		if e.Error != "" {
			if failed == 0 {
				fmt.Fprintln(formatter.Writer)
			}
			failed++
			fmt.Fprintln(formatter.Writer, formatter.Fail(e.Error))
		}
	}
}
