// Command primgen generates the fixed-width primitive vocabulary from a
// declarative table. It is normally run through go generate.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/primgen/internal/cli"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel})))

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "primgen:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
