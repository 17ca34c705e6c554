package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "protoscope",
		Short: "Parse proto3 schemas and extract the type closure of root files",
		Long: `protoscope parses proto3 schema files and computes the minimal set of enum and
message declarations needed by a list of root files, following their imports.

Examples:
  protoscope extract --root ./schemas api/service.proto
  protoscope extract --include 'acme.*' --patterns glob --output table api/service.proto
  protoscope parse ./schemas/api/service.proto
`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./protoscope.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages to stderr")

	settings := func() (string, *slog.Logger) {
		return configFile, newLogger(os.Stderr, verbose)
	}
	cmd.AddCommand(extractCmd(settings), parseCmd(settings))
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
