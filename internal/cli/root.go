// Package cli provides the command-line interface of the petstore service.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vitalvas/routedoc/internal/config"
	"github.com/vitalvas/routedoc/internal/petstore"
	"github.com/vitalvas/routedoc/openapi"
	"github.com/vitalvas/routedoc/swagger"
	"github.com/vitalvas/routedoc/web"
)

// Global flags
var (
	cfgFile string
	verbose bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "petstore",
		Short: "Documented petstore API",
		Long: `petstore runs a small in-memory pet store whose routes are documented
as an OpenAPI 3.1 document.

Example:
  petstore serve                        # Serve the API and its document
  petstore generate -o openapi.yaml     # Write the document to a file
  petstore generate --watch -c cfg.yaml # Rewrite it whenever the config changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newApp builds the petstore app with its routes registered.
func newApp(cfg *config.Config, logger *slog.Logger) (*web.App, error) {
	app := web.New(web.Config{
		Logger: logger,
		RequestID: &web.RequestIDConfig{
			HeaderName: cfg.Server.RequestIDHeader,
		},
	})

	limit, err := web.RequestSizeLimitMiddleware(web.RequestSizeLimitConfig{
		MaxBytes: cfg.Server.MaxBodyBytes,
	})
	if err != nil {
		return nil, err
	}
	headers, err := web.SecurityHeadersMiddleware(web.SecurityHeadersConfig{
		FrameOption: "SAMEORIGIN",
	})
	if err != nil {
		return nil, err
	}
	app.Use(limit, headers)

	petstore.Register(app, petstore.NewStore())
	return app, nil
}

func shell(cfg *config.Config) *openapi.Document {
	return petstore.Shell(cfg.Info.Title, cfg.Info.Description, cfg.Info.Version)
}

func buildConfig(cfg *config.Config, logger *slog.Logger) swagger.BuildConfig {
	return swagger.BuildConfig{
		ArrayComponents: cfg.Docs.ArrayComponents,
		InferPathParams: cfg.Docs.InferPathParams,
		Exclude:         cfg.Docs.Exclude,
		Logger:          logger,
	}
}

func stderrLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg.Log)
}
