package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Boburjon2142/technoxisobbot/internal/core"
)

// routeText maps reply-keyboard button labels to their command names.
// Anything unmapped is treated as a free-text expense entry.
func routeText(text string) string {
	switch text {
	case "🧾 Hisobot", "Hisobot":
		return "hisobot"
	case "📅 Bugun", "Bugun":
		return "bugun"
	case "📆 Oylik", "Oylik":
		return "oylik"
	case "↩️ Bekor qilish", "Bekor qilish":
		return "undo"
	case "🗑️ O'chirish", "O'chirish":
		return "clear"
	}
	return ""
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// Photos, stickers, voice and the like carry no text; ignore them
	// silently instead of scolding the user about the expense format.
	if msg.Text == "" {
		return
	}

	cmd := msg.Command()
	if cmd == "" {
		cmd = routeText(msg.Text)
	}

	switch cmd {
	case "start", "help":
		b.handleStart(msg)
	case "menu":
		b.replyWithKeyboard(msg.Chat.ID, "📋 Menyu yangilandi.")
	case "hisobot":
		b.handleReport(ctx, msg)
	case "bugun":
		b.handleToday(ctx, msg)
	case "oylik":
		b.handleMonth(ctx, msg)
	case "undo":
		b.handleUndo(ctx, msg)
	case "clear":
		b.handleClear(ctx, msg)
	default:
		b.handleExpenseText(ctx, msg)
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	text := "<b>👋 Assalomu alaykum!</b> Men kundalik xarajatlarni yozib boruvchi botman.\n\n" +
		"<b>Qanday yoziladi?</b>\n" +
		"— Masalan: <b>non 5000</b> yoki <b>qahva 12000</b>\n\n" +
		"<b>Hisobotlar:</b>\n" +
		"• /hisobot — barcha xarajatlar va jami\n" +
		"• /bugun — bugungi xarajatlar va jami\n" +
		"• /oylik — joriy oy jami"
	b.sendSticker(msg.Chat.ID, b.stickerWelcomeID)
	b.replyWithKeyboard(msg.Chat.ID, text)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) {
	rows, err := b.ledger.AllExpenses(ctx, msg.From.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build report", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, hisobotni chiqarishda xatolik yuz berdi.")
		return
	}
	if len(rows) == 0 {
		b.reply(msg.Chat.ID, "🧾 Hali hech qanday xarajat kiritilmagan.")
		return
	}
	b.reply(msg.Chat.ID, "<b>🧾 Xarajatlaringiz:</b>\n"+core.FormatReport(rows))
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) {
	rows, err := b.ledger.ExpensesByDate(ctx, msg.From.ID, core.Today())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build today report", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, bugungi hisobotni chiqarishda xatolik yuz berdi.")
		return
	}
	if len(rows) == 0 {
		b.reply(msg.Chat.ID, "🧾 Bugun uchun xarajatlar topilmadi.")
		return
	}
	b.reply(msg.Chat.ID, "<b>🧾 Bugungi xarajatlaringiz:</b>\n"+core.FormatReport(rows))
}

func (b *Bot) handleMonth(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	total, err := b.ledger.MonthTotal(ctx, msg.From.ID, year, month)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build month report", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, oylik hisobotni chiqarishda xatolik yuz berdi.")
		return
	}

	text := fmt.Sprintf("📅 Joriy oy xarajatlari jami: <b>%s</b>", core.FormatAmount(total))

	if total > 0 {
		byCat, err := b.ledger.MonthByCategory(ctx, msg.From.ID, year, month)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to build category breakdown", "user_id", msg.From.ID, "error", err)
		} else if len(byCat) > 0 {
			text += "\n\n<b>Bo'limlar bo'yicha:</b>"
			for _, ct := range byCat {
				text += fmt.Sprintf("\n• %s — <b>%s</b>", ct.Category, core.FormatAmount(ct.Total))
			}
		}
	}

	b.reply(msg.Chat.ID, text)
}

func (b *Bot) handleUndo(ctx context.Context, msg *tgbotapi.Message) {
	removed, err := b.ledger.Undo(ctx, msg.From.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to undo", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, o'chirishda xatolik yuz berdi.")
		return
	}
	if removed == nil {
		b.reply(msg.Chat.ID, "🗑️ O'chirish uchun yozuv topilmadi.")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("🗑️ Oxirgi yozuv o'chirildi: <b>%s</b> — <b>%s</b>",
		removed.Item, core.FormatAmount(removed.Amount)))
}

func (b *Bot) handleClear(ctx context.Context, msg *tgbotapi.Message) {
	removed, err := b.ledger.DeleteAll(ctx, msg.From.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to clear ledger", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, barcha yozuvlarni o'chirishda xatolik yuz berdi.")
		return
	}
	if removed == 0 {
		b.reply(msg.Chat.ID, "🗑️ O'chirish uchun yozuvlar topilmadi. Jami: <b>0 so'm</b>")
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("🗑️ Barcha xarajatlar o'chirildi. Jami: <b>0 so'm</b> (o'chirildi: %d)", removed))
}

// parseErrorDetail maps a parse failure to its Uzbek detail line.
func parseErrorDetail(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyMessage):
		return "Matn bo'sh bo'lmasligi kerak."
	case errors.Is(err, core.ErrBadFormat):
		return "Format: 'mahsulot summasi' (masalan: 'non 5000')."
	case errors.Is(err, core.ErrBadAmount):
		return "Summani butun son ko'rinishida yozing (masalan: 12000)."
	case errors.Is(err, core.ErrEmptyItem):
		return "Mahsulot nomi ko'rsatilmagan."
	case errors.Is(err, core.ErrNegativeAmount):
		return "Summaning qiymati manfiy bo'lmasligi kerak."
	}
	return ""
}

func (b *Bot) handleExpenseText(ctx context.Context, msg *tgbotapi.Message) {
	item, amount, err := core.ParseExpenseMessage(msg.Text)
	if err != nil {
		text := "❗ Noto'g'ri format. Iltimos quyidagicha yuboring:\n" +
			"masalan: 'non 5000' yoki 'qahva 12000'"
		if detail := parseErrorDetail(err); detail != "" {
			text += "\nXatolik tafsiloti: " + detail
		}
		b.reply(msg.Chat.ID, text)
		return
	}

	if err := b.ledger.AddExpense(ctx, msg.From.ID, item, amount, core.Today(), ""); err != nil {
		slog.ErrorContext(ctx, "Failed to add expense", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "Kechirasiz, ma'lumotni saqlashda xatolik yuz berdi.")
		return
	}

	b.sendSticker(msg.Chat.ID, b.stickerSuccessID)
	b.reply(msg.Chat.ID, fmt.Sprintf("✅ <b>%s</b> uchun <b>%s</b> yozib qo'yildi.",
		item, core.FormatAmount(amount)))
}
