package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/captainbook/internal/adapter/handler"
	"github.com/srgjo27/captainbook/internal/adapter/notify"
	"github.com/srgjo27/captainbook/internal/adapter/repository/postgres"
	"github.com/srgjo27/captainbook/internal/adapter/repository/redis"
	"github.com/srgjo27/captainbook/internal/core/ports"
	"github.com/srgjo27/captainbook/internal/core/services"
	"github.com/srgjo27/captainbook/internal/platform/auth"
	"github.com/srgjo27/captainbook/internal/platform/config"
	"github.com/srgjo27/captainbook/internal/platform/database"
	"github.com/srgjo27/captainbook/internal/platform/logger"
	"github.com/srgjo27/captainbook/internal/platform/obs"
)

const serviceName = "captainbook-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
	log.Info().Msg("server exiting")
}

func run(cfg config.App, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := obs.InitTracer(ctx, serviceName, cfg.OTelEndpoint, cfg.Env)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown failed")
			}
		}()
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.InitializeSchema(ctx, db); err != nil {
		return err
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("connecting to redis")
	redisClient := goredis.NewClient(&goredis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Info().Msg("redis connected")

	bookingRepo := postgres.NewBookingRepository(db)
	captainRepo := postgres.NewCaptainRepository(db)
	userRepo := postgres.NewUserRepository(db)
	blacklist := redis.NewTokenBlacklist(redisClient)

	hub := notify.NewHub(log, notify.DefaultQueueSize)
	notifier, relay := newNotifier(cfg, hub, redisClient, log)

	bookingService := services.NewBookingService(bookingRepo, notifier, log)
	availabilityService := services.NewAvailabilityService(captainRepo)
	sessionService := services.NewSessionService(
		captainRepo,
		userRepo,
		blacklist,
		auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL),
		auth.NewBcryptHasher(0),
		log,
	)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	var wsAuth handler.Authenticator
	if cfg.WSRequireAuth {
		wsAuth = sessionService
	}
	router := handler.NewRouter(handler.Handlers{
		Bookings: handler.NewBookingHandler(bookingService, availabilityService, log),
		Captains: handler.NewCaptainHandler(sessionService, cfg.SecureCookies(), log),
		Users:    handler.NewUserHandler(sessionService, cfg.SecureCookies(), log),
		WS:       handler.NewWSHandler(hub, wsAuth, cfg.CORSOrigins, log),
	}, sessionService, cfg.CORSOrigins, log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sessionService.RunPresenceSweep(gctx, cfg.PresenceSweepInterval)
		return nil
	})

	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(sctx)
	})

	return g.Wait()
}

// newNotifier picks where booking events are published. With the redis
// backend the relay publishes and also feeds the local hub from Pub/Sub.
func newNotifier(cfg config.App, hub *notify.Hub, client *goredis.Client, log zerolog.Logger) (ports.Notifier, *notify.RedisRelay) {
	if cfg.NotifyBackend != config.NotifyBackendRedis {
		return hub, nil
	}
	relay := notify.NewRedisRelay(client, hub, notify.DefaultRelayChannel, log)
	return relay, relay
}
