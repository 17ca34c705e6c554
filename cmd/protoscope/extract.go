package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/protoscope/extractor"
	"github.com/viant/protoscope/inspector/info"
	"github.com/viant/protoscope/inspector/proto"
	"github.com/viant/protoscope/inspector/repository"
)

func extractCmd(settings func() (string, *slog.Logger)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract the declarations needed by root schema files",
		Long: `Extract reads the root files relative to --root, follows their imports and prints
the filtered files together with the sorted list of qualified names found.
Files listed in the config file are used when no file argument is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, logger := settings()
			cfg, err := loadConfig(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Files = args
			}
			if len(cfg.Files) == 0 {
				return errors.New("no files to extract, pass file arguments or set files in the config")
			}
			watch, err := cmd.Flags().GetBool("watch")
			if err != nil {
				return err
			}
			return runExtract(cmd, cfg, logger, watch)
		},
	}
	cmd.Flags().String("root", "", "directory or URL the files are relative to")
	cmd.Flags().StringSlice("include", nil, "qualified names or patterns of declarations to keep")
	cmd.Flags().StringSlice("exclude", nil, "qualified names or patterns of declarations to drop")
	cmd.Flags().String("patterns", patternLiteral, "include and exclude syntax: literal, regexp or glob")
	cmd.Flags().StringP("output", "o", outputYAML, "output format: yaml, json or table")
	cmd.Flags().Int("cache-size", 256, "parsed file cache capacity, 0 disables caching")
	cmd.Flags().Bool("watch", false, "extract again whenever a .proto file under a local root changes")
	return cmd
}

func runExtract(cmd *cobra.Command, cfg *Config, logger *slog.Logger, watch bool) error {
	include, err := cfg.IncludeExpression()
	if err != nil {
		return err
	}
	exclude, err := cfg.ExcludeExpression()
	if err != nil {
		return err
	}
	inspector, err := proto.NewInspector(&info.Config{CacheSize: cfg.CacheSize})
	if err != nil {
		return err
	}
	defer inspector.Close()

	reader := repository.NewReader(afs.New(), logger)
	ext, err := extractor.New(reader,
		extractor.WithInspector(inspector),
		extractor.WithLogger(logger),
		extractor.WithInclude(include),
		extractor.WithExclude(exclude))
	if err != nil {
		return err
	}
	run := func() error {
		result, err := ext.Extract(cmd.Context(), cfg.Root, cfg.Files)
		if err != nil {
			return err
		}
		if err = writeResult(cmd.OutOrStdout(), result, cfg.Output); err != nil {
			return err
		}
		printSummary(cmd.ErrOrStderr(), result)
		return nil
	}
	if err = run(); err != nil || !watch {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchRoot(ctx, cfg.Root, logger, run)
}

func printSummary(w io.Writer, result *extractor.Result) {
	if len(result.Found) == 0 {
		color.New(color.FgYellow).Fprintf(w, "no declarations found\n")
		return
	}
	color.New(color.FgGreen).Fprintf(w, "found %d declarations in %d packages\n", len(result.Found), len(result.Protos))
}

