package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bot-detect/internal/classifier"
	"bot-detect/internal/config"
	"bot-detect/internal/db"
	apihttp "bot-detect/internal/http"
	"bot-detect/internal/repository"
	"bot-detect/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	// El servicio no acepta solicitudes hasta que la base responda y el
	// esquema esté inicializado.
	gate := db.NewReadinessGate(
		logger,
		pool,
		func(ctx context.Context) error { return db.InitSchema(ctx, pool) },
		time.Duration(cfg.DBReadyIntervalSeconds)*time.Second,
		cfg.DBReadyMaxAttempts,
	)
	if err := gate.Wait(ctx); err != nil {
		logger.Fatal("database never became ready", zap.Error(err))
	}

	zsClient := classifier.NewZeroShotClient(cfg.ClassifierBaseURL, cfg.ClassifierAPIKey, cfg.ClassifierModel, logger)
	if err := zsClient.Warmup(ctx); err != nil {
		logger.Fatal("classifier init failed", zap.Error(err))
	}

	messageRepo := repository.NewPgMessageRepository(pool)
	predictionSvc := service.NewPredictionService(logger, messageRepo, classifier.NewBotDetector(zsClient))

	var limiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(
				redisClient,
				time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
				cfg.RateLimitMax,
			)
		}
		cancel()
	}

	predictHandler := apihttp.NewPredictHandler(logger, predictionSvc)
	healthHandler := apihttp.NewHealthHandler(pool)
	router := apihttp.NewRouter(logger, predictHandler, healthHandler, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := runServer(ctx, server); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// runServer sirve hasta que el contexto se cancele (SIGINT/SIGTERM) y
// entonces drena las conexiones en curso antes de salir.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
