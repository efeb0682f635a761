package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vitalvas/routedoc/internal/config"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/swagger"
)

var (
	genOutput string
	genFormat string
	genWatch  bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the OpenAPI document",
		Long: `Build the OpenAPI document of the petstore routes and write it to a file
or to standard output.

With --watch the config file is monitored and the document is rewritten
whenever it changes.

Example:
  petstore generate                          # YAML to stdout
  petstore generate -o openapi.json -f json  # JSON to a file
  petstore generate -c petstore.yaml -o openapi.yaml --watch`,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVarP(&genFormat, "format", "f", "yaml", "output format: yaml, json")
	cmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate when the config file changes")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format := openapi.Format(genFormat)
	if format != openapi.FormatYAML && format != openapi.FormatJSON {
		return fmt.Errorf("%w: %q", openapi.ErrUnknownFormat, genFormat)
	}

	if !genWatch {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return generate(cmd.OutOrStdout(), cfg, format)
	}

	if cfgFile == "" {
		return errors.New("--watch requires --config")
	}
	if genOutput == "" {
		return errors.New("--watch requires --output")
	}

	initial, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := stderrLogger(initial)

	cfg, err := config.Watch(cfgFile,
		func(next *config.Config) {
			if err := generate(cmd.OutOrStdout(), next, format); err != nil {
				logger.Error("failed to regenerate document", slog.String("error", err.Error()))
				return
			}
			logger.Info("document regenerated", slog.String("output", genOutput))
		},
		func(err error) {
			logger.Warn("config change ignored", slog.String("error", err.Error()))
		},
	)
	if err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}

	if err := generate(cmd.OutOrStdout(), cfg, format); err != nil {
		return err
	}
	logger.Info("watching config", slog.String("config", cfgFile), slog.String("output", genOutput))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return nil
}

// generate builds the document for cfg and writes it to genOutput, or to
// stdout when no output file is set.
func generate(stdout io.Writer, cfg *config.Config, format openapi.Format) error {
	logger := stderrLogger(cfg)
	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	doc, err := swagger.Build(shell(cfg), swagger.Endpoints(app.Routes()), buildConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	data, err := openapi.Marshal(doc, format)
	if err != nil {
		return err
	}

	if genOutput == "" {
		_, err = stdout.Write(data)
		return err
	}

	if err := os.WriteFile(genOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", genOutput, err)
	}
	return nil
}
