package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "vet-records/internal/adapters/storage/postgres"
	"vet-records/internal/platform/config"
	"vet-records/internal/platform/logger"
	"vet-records/internal/router"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "vet-records",
		Short:         "API de historia clínica de mascotas",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("log-level", "", "debug|info|warn|error (LOG_LEVEL)")
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCmd(v), newMigrateCmd(v))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().String("port", "", "puerto de escucha (PORT)")
	cmd.Flags().Bool("migrate", false, "aplica migraciones antes de servir")
	_ = v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("MIGRATE_ON_START", cmd.Flags().Lookup("migrate"))
	return cmd
}

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return errors.NotValidf("migrate without DB_DSN or DB_HOST")
			}
			log := newLogger(cfg)

			db, err := pg.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			_, err = pg.Migrate(cmd.Context(), db, log)
			return err
		},
	}
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

func serve(ctx context.Context, cfg config.Config, log logger.Logger) error {
	var db *sqlx.DB
	if cfg.HasDatabase() {
		var err error
		db, err = pg.Open(cfg.DSN())
		if err != nil {
			log.Error("database unavailable", map[string]any{"error": err.Error()})
			return err
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			if _, err := pg.Migrate(ctx, db, log); err != nil {
				return err
			}
		}
	} else {
		log.Warn("no database configured, using in-memory store", nil)
	}

	scheme, err := router.NewScheme(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Config: cfg,
			DB:     db,
			Logger: log,
			Scheme: scheme,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"auth_mode": string(cfg.AuthMode),
			"postgres":  db != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
