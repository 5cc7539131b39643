package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-facet-engine/api"
	"github.com/gcbaptista/go-facet-engine/config"
	"github.com/gcbaptista/go-facet-engine/internal/engine"
	"github.com/gcbaptista/go-facet-engine/internal/kvstore"
	"github.com/gcbaptista/go-facet-engine/internal/logging"
	"github.com/gcbaptista/go-facet-engine/internal/newsletter"
	"github.com/gcbaptista/go-facet-engine/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Run the HTTP server",
		Example: "facetd serve -c ./facetd.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServiceConfig(configPath)
			if err != nil {
				return err
			}
			if err := runServer(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("run server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	return cmd
}

func runServer(ctx context.Context, cfg *config.ServiceConfig) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	kv, err := kvstore.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close key-value store")
		}
	}()

	// The memory backend keeps collections in memory as well.
	dataDir := cfg.Storage.DataDir
	if cfg.Storage.Backend == config.StorageBackendMemory {
		dataDir = ""
	}
	logging.Info().Str("data_dir", dataDir).Str("backend", cfg.Storage.Backend).Msg("Starting facet engine")
	eng := engine.NewEngine(dataDir, kv)
	defer eng.Close()

	if cfg.Sessions.MaxIdle > 0 && cfg.Sessions.JanitorInterval > 0 {
		eng.StartSessionJanitor(cfg.Sessions.MaxIdle, cfg.Sessions.JanitorInterval)
	}

	if cfg.Seed.Path != "" {
		file, err := seed.Load(cfg.Seed.Path)
		if err != nil {
			return err
		}
		created, err := seed.Apply(eng, file)
		if err != nil {
			return err
		}
		logging.Info().Strs("collections", created).Str("path", cfg.Seed.Path).Msg("Seed applied")
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestIDMiddleware(),
		api.RequestLoggingMiddleware(),
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes),
	)
	api.SetupRoutes(router, eng, newsletter.NewRegistry(kv))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
