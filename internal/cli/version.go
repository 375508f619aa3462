package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/primgen/internal/ir"
)

// VersionInfo is the structured output of the version command.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	IRVersion string `json:"ir_version" yaml:"ir_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the primgen version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if formatter.Structured() {
				return formatter.Success(VersionInfo{Version: ir.GeneratorVersion, IRVersion: ir.IRVersion})
			}
			fmt.Fprintf(formatter.Writer, "primgen %s (ir %s)\n", ir.GeneratorVersion, ir.IRVersion)
			return nil
		},
	}
}
