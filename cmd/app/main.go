package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livestock/cmd"
	"livestock/internal/adapters/out/persistence"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var envFile string

func main() {
	root := &cobra.Command{
		Use:           "livestock",
		Short:         "Abattoir livestock operations service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "optional dotenv file loaded before reading the environment")
	root.AddCommand(serveCommand(), migrateCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}
			logger := cmd.NewLogger(cfg)

			db, err := persistence.Open(cfg.Database())
			if err != nil {
				return err
			}
			if err = persistence.Migrate(db); err != nil {
				return err
			}
			logger.InfoContext(c.Context(), "Schema is up to date", "driver", cfg.DBDriver)
			return nil
		},
	}
}

func serveCommand() *cobra.Command {
	var migrate bool
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}
			return serve(c.Context(), cfg, migrate)
		},
	}
	command.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return command
}

func serve(ctx context.Context, cfg cmd.Config, migrate bool) error {
	logger := cmd.NewLogger(cfg)

	db, err := persistence.Open(cfg.Database())
	if err != nil {
		return err
	}
	if migrate || cfg.DBDriver == persistence.DriverSQLite {
		if err = persistence.Migrate(db); err != nil {
			return err
		}
	}

	app, err := cmd.NewCompositionRoot(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("Closing event transport failed", "error", closeErr)
		}
	}()

	router, err := app.NewRouter(ctx)
	if err != nil {
		return err
	}
	jobManager, err := app.NewJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	srv := &http.Server{Addr: cfg.HTTPAddr(), Handler: router, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
