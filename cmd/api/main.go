package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/habitualhq/habitual/internal/adapters/cache"
	adapterHTTP "github.com/habitualhq/habitual/internal/adapters/handler/http"
	"github.com/habitualhq/habitual/internal/adapters/repository"
	"github.com/habitualhq/habitual/internal/adapters/suggestion"
	"github.com/habitualhq/habitual/internal/config"
	"github.com/habitualhq/habitual/internal/core/domain"
	"github.com/habitualhq/habitual/internal/core/services"
	"github.com/habitualhq/habitual/internal/core/workers"
	"github.com/habitualhq/habitual/internal/logger"
)

func main() {
	startTime := time.Now()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	log.Info("connecting to database", zap.String("host", cfg.DBHost))

	db, err := sqlx.Connect("pgx", cfg.DatabaseDSN())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("database connected")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	gamificationRepo := repository.NewPostgresGamificationRepository(db)
	journalRepo := repository.NewPostgresJournalRepository(db)

	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn("redis unavailable, running without cache and rate limiting", zap.Error(err))
		redisClient = nil
	} else {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient, log)
	}

	trendWorker := workers.NewTrendWorker(habitRepo, log)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	trendWorker.Start(workerCtx)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration)
	gamificationService := services.NewGamificationService(gamificationRepo, log, services.DefaultHighlightTTL)
	habitService := services.NewHabitService(habitRepo)
	trackingService := services.NewTrackingService(habitRepo, gamificationService, trendWorker)
	progressService := services.NewProgressService(habitRepo)
	orderService := services.NewOrderService(habitRepo, log)
	journalService := services.NewJournalService(journalRepo)

	var suggester domain.Suggester
	if cfg.SuggestionServiceURL != "" {
		suggester = suggestion.NewClient(cfg.SuggestionServiceURL)
	}
	suggestionService := services.NewSuggestionService(suggester, log)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:        adapterHTTP.NewHabitHandler(habitService, orderService),
		TrackingHandler:     adapterHTTP.NewTrackingHandler(trackingService, gamificationService),
		StatsHandler:        adapterHTTP.NewStatsHandler(progressService),
		GamificationHandler: adapterHTTP.NewGamificationHandler(gamificationService),
		SuggestionHandler:   adapterHTTP.NewSuggestionHandler(suggestionService),
		JournalHandler:      adapterHTTP.NewJournalHandler(journalService),
		TokenService:        tokenService,
		DB:                  db,
		Redis:               redisClient,
		Logger:              log,
		StartTime:           startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("habitual api running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	stopWorker()
	gamificationService.Stop()

	log.Info("server stopped gracefully")
}
