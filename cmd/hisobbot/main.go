package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Boburjon2142/technoxisobbot/internal/bot"
	"github.com/Boburjon2142/technoxisobbot/internal/cli"
	"github.com/Boburjon2142/technoxisobbot/internal/dispatch"
	"github.com/Boburjon2142/technoxisobbot/internal/keepalive"
	"github.com/Boburjon2142/technoxisobbot/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	cli.RequireBotToken(logger, cfg)

	store := cli.OpenStore(logger, cfg.DBPath)
	defer store.Close()

	pool := dispatch.NewPool(cfg.DispatchWorkers, cfg.DispatchTimeout)
	ledger := services.NewLedger(store, pool)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Liveness probe for uptime monitors and free-hosting keepalive pings.
	probe := keepalive.NewServer(cfg.KeepaliveAddr())
	probe.Start()
	if cfg.KeepaliveURL != "" {
		keepalive.SelfPing(ctx, cfg.KeepaliveURL, cfg.KeepaliveInterval)
	}

	b, err := bot.New(cfg, ledger)
	if err != nil {
		logger.Error("Failed to initialize bot", "error", err)
		os.Exit(1)
	}

	logger.Info("Bot is starting polling...",
		"username", b.Username(),
		"db_path", cfg.DBPath,
		"workers", cfg.DispatchWorkers)

	runErr := b.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := probe.Shutdown(shutdownCtx); err != nil {
		logger.Error("Keepalive shutdown error", "error", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("Bot stopped with error", "error", runErr)
		os.Exit(1)
	}
	logger.Info("Bot stopped.")
}
