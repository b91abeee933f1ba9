package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/penguins/internal/bootstrap"
	"github.com/at-ishikawa/penguins/internal/catalog"
	"github.com/at-ishikawa/penguins/internal/config"
	"github.com/at-ishikawa/penguins/internal/logger"
	"github.com/at-ishikawa/penguins/internal/memory"
	"github.com/at-ishikawa/penguins/internal/penguin"
	"github.com/at-ishikawa/penguins/internal/revalidate"
	"github.com/at-ishikawa/penguins/internal/server"
	"github.com/at-ishikawa/penguins/internal/store"
)

const serviceName = "penguin-server"

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Penguin catalog HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	log := logger.New(serviceName, cfg.Log)
	app := bootstrap.New(
		bootstrap.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		bootstrap.WithLogger(log),
	)

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("store.Open() > %w", err)
	}
	app.AddShutdownHook("store", func(context.Context) error {
		return s.Close()
	})

	revalidator := revalidate.New(cfg.Revalidate)
	if client, ok := revalidator.(*revalidate.Client); ok {
		app.AddShutdownHook("revalidate", func(context.Context) error {
			return client.Close()
		})
	}

	service := catalog.NewService(penguin.NewDBRepository(s), memory.NewDBRepository(s), revalidator, log)
	handler, err := server.NewHandler(service, s)
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("server.NewHandler() > %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.NewRouter(handler, log, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("http", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.Database.Driver).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
