package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"patient-intake-server/internal/config"
	"patient-intake-server/internal/models"
	"patient-intake-server/internal/routes"
)

func main() {
	// A missing .env is fine; the real environment is used instead.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		boot := bootLogger()
		boot.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		boot := bootLogger()
		boot.Fatal().Err(err).Msg("error loading config")
	}

	log := newLogger(cfg)

	db, err := models.InitDB(models.DatabaseConfig{
		DSN:            cfg.Database.DSN,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		MaxOpenConns:   cfg.Database.MaxOpenConns,
		MaxIdleConns:   cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		log.Fatal().Err(err).
			Str("db_host", cfg.Database.Host).
			Str("db_name", cfg.Database.Name).
			Msg("error connecting to database")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, db, cfg, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("intake_path", cfg.IntakePath).Msg("server starting")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func bootLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}
