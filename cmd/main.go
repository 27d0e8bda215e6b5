package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/chess-federation/brackets"
	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/config"
	"github.com/Dosada05/chess-federation/db"
	"github.com/Dosada05/chess-federation/handlers"
	"github.com/Dosada05/chess-federation/repositories"
	api "github.com/Dosada05/chess-federation/routes"
	"github.com/Dosada05/chess-federation/services"
	"github.com/Dosada05/chess-federation/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx := context.Background()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn, logger); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Два S3-совместимых хранилища: картинки (новости, галерея) и PGN-файлы партий
	imageUploader, err := storage.NewS3Uploader(ctx, storage.S3UploaderConfig(cfg.Images))
	if err != nil {
		logger.Error("failed to initialize image storage", slog.Any("error", err))
		os.Exit(1)
	}
	pgnUploader, err := storage.NewS3Uploader(ctx, storage.S3UploaderConfig(cfg.PGN))
	if err != nil {
		logger.Error("failed to initialize PGN storage", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("object storage initialized",
		slog.String("images_bucket", cfg.Images.BucketName),
		slog.String("pgn_bucket", cfg.PGN.BucketName))

	// Кэш деревьев турниров и таблиц: Redis, если задан REDIS_URL
	var readCache cache.Cache = cache.NopCache{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisCache.Close()
		readCache = redisCache
		logger.Info("redis cache enabled", slog.Duration("ttl", cfg.CacheTTL))
	} else {
		logger.Info("REDIS_URL is not set, cache disabled")
	}

	// Инициализация репозиториев
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	newsRepo := repositories.NewPostgresNewsRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	imageRepo := repositories.NewPostgresImageRepository(dbConn)
	transactor := repositories.NewSQLTransactor(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	playerService := services.NewPlayerService(playerRepo, readCache, logger)
	tournamentService := services.NewTournamentService(
		tournamentRepo,
		standingRepo,
		roundRepo,
		matchRepo,
		transactor,
		brackets.NewRoundRobinGenerator(),
		readCache,
		logger,
	)
	roundService := services.NewRoundService(roundRepo, readCache, logger)
	matchService := services.NewMatchService(matchRepo, pgnUploader, readCache, logger)
	newsService := services.NewNewsService(newsRepo, imageUploader, logger)
	eventService := services.NewEventService(eventRepo, logger)
	galleryService := services.NewGalleryService(imageRepo, imageUploader, logger)
	analysisService := services.NewAnalysisService(cfg.EngineAPIURL, nil, logger)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router,
		api.Options{
			Logger:             logger,
			AllowedOrigins:     cfg.AllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
		api.Handlers{
			System:     handlers.NewSystemHandler(dbConn),
			Player:     handlers.NewPlayerHandler(playerService),
			Tournament: handlers.NewTournamentHandler(tournamentService),
			Round:      handlers.NewRoundHandler(roundService),
			Match:      handlers.NewMatchHandler(matchService),
			News:       handlers.NewNewsHandler(newsService),
			Event:      handlers.NewEventHandler(eventService),
			Gallery:    handlers.NewGalleryHandler(galleryService),
			Analysis:   handlers.NewAnalysisHandler(analysisService),
		},
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера. WriteTimeout больше обычного: загрузка пачки картинок в бакет.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
