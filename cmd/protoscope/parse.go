package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/viant/protoscope/inspector/info"
	"github.com/viant/protoscope/inspector/proto"
)

func parseCmd(settings func() (string, *slog.Logger)) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse <file|URL>",
		Short: "Print the syntax tree of a proto3 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger := settings()
			inspector, err := proto.NewInspector(&info.Config{})
			if err != nil {
				return err
			}
			defer inspector.Close()
			logger.Debug("parsing file", "path", args[0])
			file, err := inspector.InspectFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeFile(cmd.OutOrStdout(), file, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml, json or table")
	return cmd
}
