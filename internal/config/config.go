package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Telegram
	BotToken         string
	StickerWelcomeID string
	StickerSuccessID string

	// Database
	DBPath string

	// Dispatch
	DispatchWorkers int
	DispatchTimeout time.Duration

	// Keepalive
	KeepaliveHost     string
	KeepalivePort     int
	KeepaliveURL      string
	KeepaliveInterval time.Duration
}

// Load reads configuration from the environment. All lookups happen here,
// once; nothing below this layer touches the environment.
func Load() *Config {
	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		StickerWelcomeID: getEnv("STICKER_WELCOME_ID", ""),
		StickerSuccessID: getEnv("STICKER_SUCCESS_ID", ""),

		DBPath: getEnv("DB_PATH", "expenses.db"),

		DispatchWorkers: getEnvInt("DISPATCH_WORKERS", 4),
		DispatchTimeout: getEnvDuration("DISPATCH_TIMEOUT", 10*time.Second),

		KeepaliveHost:     getEnv("KEEPALIVE_HOST", "0.0.0.0"),
		KeepalivePort:     getEnvInt("PORT", getEnvInt("KEEPALIVE_PORT", 8080)),
		KeepaliveURL:      getEnv("KEEPALIVE_URL", ""),
		KeepaliveInterval: getEnvDuration("KEEPALIVE_INTERVAL", 5*time.Minute),
	}

	return cfg
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DispatchWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid dispatch workers %d: must be at least 1", c.DispatchWorkers))
	} else if c.DispatchWorkers > 64 {
		errors = append(errors, fmt.Sprintf("invalid dispatch workers %d: must be at most 64", c.DispatchWorkers))
	}

	if c.DispatchTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid dispatch timeout %v: must be at least 1 second", c.DispatchTimeout))
	} else if c.DispatchTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid dispatch timeout %v: must be at most 1 minute", c.DispatchTimeout))
	}

	if c.KeepalivePort < 1 || c.KeepalivePort > 65535 {
		errors = append(errors, fmt.Sprintf("invalid keepalive port %d: must be between 1 and 65535", c.KeepalivePort))
	}

	if c.KeepaliveURL != "" {
		if parsed, err := url.Parse(c.KeepaliveURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid keepalive URL '%s': %v", c.KeepaliveURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid keepalive URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}

		if c.KeepaliveInterval < 30*time.Second {
			errors = append(errors, fmt.Sprintf("invalid keepalive interval %v: must be at least 30 seconds", c.KeepaliveInterval))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// KeepaliveAddr returns the host:port the liveness server binds to.
func (c *Config) KeepaliveAddr() string {
	return fmt.Sprintf("%s:%d", c.KeepaliveHost, c.KeepalivePort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
