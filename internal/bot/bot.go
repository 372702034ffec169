// Package bot is the conversational front end: it routes Telegram updates
// to the ledger facade and phrases every reply. All user-visible text lives
// here; the core below it knows nothing about Telegram or Uzbek.
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Boburjon2142/technoxisobbot/internal/config"
	"github.com/Boburjon2142/technoxisobbot/internal/services"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	ledger *services.Ledger

	stickerWelcomeID string
	stickerSuccessID string
}

func New(cfg *config.Config, ledger *services.Ledger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:              api,
		ledger:           ledger,
		stickerWelcomeID: cfg.StickerWelcomeID,
		stickerSuccessID: cfg.StickerSuccessID,
	}, nil
}

// Username returns the bot account's username.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run registers the command menu and long-polls for updates until ctx ends.
// Each update is handled on its own goroutine; the dispatch pool below the
// ledger facade bounds how many of them can touch the store at once.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.setCommands(); err != nil {
		slog.Warn("Failed to set bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	slog.Info("Bot is polling for updates", "username", b.Username())

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) setCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Botdan foydalanish bo'yicha ma'lumot"},
		tgbotapi.BotCommand{Command: "hisobot", Description: "Barcha xarajatlar va jami"},
		tgbotapi.BotCommand{Command: "bugun", Description: "Bugungi xarajatlar va jami"},
		tgbotapi.BotCommand{Command: "oylik", Description: "Joriy oy jami xarajatlar"},
		tgbotapi.BotCommand{Command: "menu", Description: "Menyuni qayta ko'rsatish"},
		tgbotapi.BotCommand{Command: "help", Description: "Qisqa yo'riqnoma"},
		tgbotapi.BotCommand{Command: "undo", Description: "Oxirgi yozuvni o'chirish"},
		tgbotapi.BotCommand{Command: "clear", Description: "Barcha yozuvlarni o'chirish"},
	)
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainReplyKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendSticker(chatID int64, fileID string) {
	if fileID == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewSticker(chatID, tgbotapi.FileID(fileID))); err != nil {
		slog.Debug("Failed to send sticker", "chat_id", chatID, "error", err)
	}
}

func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🧾 Hisobot"),
			tgbotapi.NewKeyboardButton("📅 Bugun"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📆 Oylik"),
			tgbotapi.NewKeyboardButton("↩️ Bekor qilish"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🗑️ O'chirish"),
		),
	)
}
