// @title           Pet Adoption API
// @version         1.0
// @description     Listados de mascotas en adopción, solicitudes y feed de actividad.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"pet-adoption/internal/adapters/auth/jwtauth"
	"pet-adoption/internal/adapters/auth/odin"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/tracing"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})

	tp, err := tracing.Setup(tracing.Options{
		ServiceName: cfg.App,
		Stdout:      cfg.Tracing.Stdout,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(ctx, tp)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Storage.DSN != "" {
		db, err = pg.Open(cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}

	var rdb redis.UniversalClient
	if cfg.Storage.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	verifier, closeVerifier, err := buildVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	defer closeVerifier()

	handler := newHandler(cfg, log, db, rdb, verifier, tp)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server.start", map[string]any{
			"addr":      srv.Addr,
			"auth_mode": string(cfg.Auth.Mode),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info("server.shutdown", nil)
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server.error", map[string]any{"err": err.Error()})
		return err
	}
	return nil
}

func newHandler(cfg config.Config, log logger.Logger, db *sql.DB, rdb redis.UniversalClient, verifier auth.AuthVerifier, tp *sdktrace.TracerProvider) http.Handler {
	return router.NewRouter(router.Options{
		Logger:         log,
		AuthVerifier:   verifier,
		DB:             db,
		Redis:          rdb,
		Workflow:       applications.Policy{AutoRejectCompeting: cfg.Workflow.AutoRejectCompeting},
		TracerProvider: tp,
		Metrics:        metrics.New(),
	})
}

// buildVerifier elige la verificación de tokens según auth.mode. En modo dev
// no hay verifier y se aceptan los headers X-Debug-*.
func buildVerifier(cfg config.AuthConfig) (auth.AuthVerifier, func(), error) {
	noop := func() {}

	switch cfg.Mode {
	case config.AuthModeJWT:
		v, err := jwtauth.New(jwtauth.Config{
			JWKSURL:     cfg.JWKSURL,
			HS256Secret: cfg.HS256Secret,
			Audience:    cfg.Audience,
			Issuer:      cfg.Issuer,
			RoleClaim:   cfg.RoleClaim,
		})
		if err != nil {
			return nil, noop, err
		}
		return v, v.Close, nil

	case config.AuthModeOdin:
		c, err := odin.NewClient(odin.Config{
			BaseURL: cfg.OdinBaseURL,
			APIKey:  cfg.OdinAPIKey,
		})
		if err != nil {
			return nil, noop, err
		}
		return odin.NewVerifier(c), noop, nil
	}

	return nil, noop, nil
}
