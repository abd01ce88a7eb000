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

	"wordsheet/internal/api"
	"wordsheet/internal/config"
	"wordsheet/internal/handler"
	"wordsheet/internal/repository"
	"wordsheet/internal/repository/memory"
	"wordsheet/internal/repository/postgres"
	"wordsheet/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Word Sheet server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.Bool("postgres", cfg.UsePostgres()),
		zap.Bool("bot", cfg.BotEnabled()),
	)

	// Initialize repositories
	var (
		wordRepo repository.WordRepository
		userRepo repository.UserRepository
	)

	if cfg.UsePostgres() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		wordRepo = postgres.NewWordRepo(db)
		userRepo = postgres.NewUserRepo(db)
	} else {
		logger.Info("No database configured, keeping words in memory")
		wordRepo = memory.NewWordRepo(memory.SeedWords())
		userRepo = memory.NewUserRepo()
	}

	// Initialize services
	wordService := service.NewWordService(wordRepo)
	authService := service.NewAuthService(userRepo, cfg.BotPassword)

	// HTTP API
	apiHandler := api.NewHandler(wordService, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(apiHandler, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Telegram bot
	var bot *tele.Bot
	if cfg.BotEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		h := handler.NewHandler(bot, authService, wordService, logger)
		h.RegisterHandlers()

		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	if bot != nil {
		bot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
