// Command checkbot verifies that the configured BOT_TOKEN is valid by
// calling getMe against the Telegram API.
package main

import (
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Boburjon2142/technoxisobbot/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	cli.RequireBotToken(logger, cfg)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Token check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Token OK", "username", api.Self.UserName, "id", api.Self.ID)
}
