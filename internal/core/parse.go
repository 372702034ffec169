// Package core holds the ledger domain: the expense record, its validation
// rules, and the parsing/formatting helpers shared by the front end.
package core

import (
	"errors"
	"strings"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrBadFormat    = errors.New("expected 'item amount'")
	ErrBadAmount    = errors.New("amount must be a whole number")
)

// ParseExpenseMessage parses a free-text entry like "non 5000" into an item
// label and amount. The last whitespace-separated token is the amount, all
// preceding tokens form the item.
func ParseExpenseMessage(text string) (string, int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", 0, ErrEmptyMessage
	}

	parts := strings.Fields(s)
	if len(parts) < 2 {
		return "", 0, ErrBadFormat
	}

	amountStr := parts[len(parts)-1]
	item := strings.TrimSpace(strings.Join(parts[:len(parts)-1], " "))

	// ASCII digits only: other Unicode digits would need locale-aware
	// conversion, and accepting them half-way corrupts stored amounts.
	var amount int64
	for _, r := range amountStr {
		if r < '0' || r > '9' {
			return "", 0, ErrBadAmount
		}
		d := int64(r - '0')
		if amount > (1<<63-1-d)/10 {
			return "", 0, ErrBadAmount
		}
		amount = amount*10 + d
	}

	if item == "" {
		return "", 0, ErrEmptyItem
	}

	return item, amount, nil
}
