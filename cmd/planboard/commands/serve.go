package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/db"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/config"
	"github.com/monocle-dev/planboard/internal/events"
	"github.com/monocle-dev/planboard/internal/handlers"
	"github.com/monocle-dev/planboard/internal/logs"
	"github.com/monocle-dev/planboard/internal/router"
	"github.com/monocle-dev/planboard/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 15 * time.Second

func init() {
	serveCmd.Flags().String("port", "", "HTTP listen port")
	viper.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().Bool("migrate", true, "auto-migrate the schema before serving")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		migrate, _ := cmd.Flags().GetBool("migrate")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, migrate)
	},
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	log, err := logs.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	database, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close(database)

	if migrate {
		if err := db.MigrateDatabase(database); err != nil {
			return err
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	hub := events.NewHub(log)

	svc := services.New(database, tokens,
		services.WithLogger(log),
		services.WithPublisher(hub),
		services.WithAnnouncer(services.NewWebhookAnnouncer(nil)),
	)

	h := handlers.New(svc, hub, tokens, log, cfg.AllowedOrigins)
	h.CookieDomain = cfg.CookieDomain

	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(h, tokens, cfg.AllowedOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.WithField("addr", server.Addr).Info("planboard listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
