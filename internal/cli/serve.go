package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vitalvas/routedoc/internal/config"
	"github.com/vitalvas/routedoc/swagger"
)

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the petstore API and its OpenAPI document",
		RunE:  runServe,
	}

	cmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default: server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := stderrLogger(cfg)
	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	if err := swagger.Serve(app, shell(cfg), &swagger.Config{
		Path:        cfg.Docs.Path,
		UIPath:      cfg.Docs.UIPath,
		CORSOrigins: cfg.Docs.CORSOrigins,
		Build:       buildConfig(cfg, logger),
		Logger:      logger,
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("listening", slog.String("addr", cfg.Server.Addr))
	return app.ListenAndServe(ctx, cfg.Server.Addr)
}
