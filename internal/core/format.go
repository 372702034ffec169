package core

import (
	"strconv"
	"strings"
)

// FormatAmount renders an amount in so'm with space-grouped thousands,
// e.g. 12000 -> "12 000 so'm".
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + " so'm"
}

// FormatReport renders expenses as an HTML list with a trailing total line,
// the shape the Telegram front end sends as a reply.
func FormatReport(rows []Expense) string {
	var lines []string
	var total int64
	for _, e := range rows {
		total += e.Amount
		lines = append(lines, "<b>"+e.Item+"</b> — <b>"+FormatAmount(e.Amount)+"</b>")
	}
	lines = append(lines, "💰 Jami: <b>"+FormatAmount(total)+"</b>")
	return strings.Join(lines, "\n")
}
