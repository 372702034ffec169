// Package cli consolidates the bootstrap steps shared by cmd/hisobbot,
// cmd/initdb and cmd/checkbot.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Boburjon2142/technoxisobbot/internal/config"
	"github.com/Boburjon2142/technoxisobbot/internal/storage"
)

// SetupLogger initializes structured logging and sets the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. Missing files are fine in
// production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// RequireBotToken exits unless a bot token is configured.
func RequireBotToken(logger *slog.Logger, cfg *config.Config) {
	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is not set. Put it in a .env file.")
		os.Exit(1)
	}
}

// OpenStore opens the ledger store, ensuring the schema. Schema failure is
// fatal: the process refuses to serve without a valid schema.
func OpenStore(logger *slog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open expense store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
