package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"meetme-api/internal/config"
	"meetme-api/internal/handler"
	"meetme-api/internal/middleware"
	"meetme-api/internal/payment"
	"meetme-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg.Env)

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DB.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.DB.PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Fatal().Err(err).Msg("ping postgres")
	}
	logger.Info().Msg("connected to postgres")

	applyMigrations(logger, pool, cfg.DB.MigrationsFile)

	st := store.New(pool)
	stripeClient := payment.NewClient(cfg.Stripe.SecretKey)
	h := handler.New(st, stripeClient, cfg.Auth.JWTSecret, logger)

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	rl := middleware.NewRateLimiter(5, 10)
	h.Routes(router, rl)

	// periodic cleanup of expired/revoked refresh tokens
	cr := cron.New()
	_, err = cr.AddFunc("@hourly", func() {
		n, err := st.PurgeExpiredRefreshTokens(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("purge refresh tokens")
			return
		}
		if n > 0 {
			logger.Info().Int64("purged", n).Msg("purged refresh tokens")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule token purge")
	}
	cr.Start()
	defer cr.Stop()

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func newLogger(env string) zerolog.Logger {
	switch env {
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		return zerolog.New(cw).With().Timestamp().Logger()
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// applyMigrations executes the schema file if present; missing files are
// logged and skipped so containerized deployments without the file boot.
func applyMigrations(logger zerolog.Logger, pool *pgxpool.Pool, path string) {
	migration, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Msg("migration file not found, skipping")
		return
	}
	if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		logger.Warn().Err(err).Msg("migration warning")
		return
	}
	logger.Info().Str("file", path).Msg("migration applied")
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
