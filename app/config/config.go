package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Config holds the process-wide configuration and shared resources.
type Config struct {
	DB         *sql.DB
	Log        zerolog.Logger
	ListenAddr string
	JWTSecret  string
}

var AppConfig *Config

// Init loads the environment, configures logging and opens the database
// pool. It must be called once before GetDB or GetLogger.
func Init() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := newLogger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_NAME", "oakridge"),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(envIntOr("DB_MAX_OPEN_CONNS", 25))
	db.SetMaxIdleConns(envIntOr("DB_MAX_IDLE_CONNS", 5))
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	AppConfig = &Config{
		DB:         db,
		Log:        logger,
		ListenAddr: envOr("LISTEN_ADDR", ":8080"),
		JWTSecret:  envOr("JWT_SECRET", "oakridge-dev-secret"),
	}
	logger.Info().Msg("database connected")
	return nil
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}

// GetDB returns the shared connection pool.
func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetLogger returns the application logger.
func GetLogger() zerolog.Logger {
	return AppConfig.Log
}

// GetJWTSecret returns the signing key for auth tokens.
func GetJWTSecret() []byte {
	return []byte(AppConfig.JWTSecret)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
