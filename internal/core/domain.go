package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical ledger date form. Every date stored or queried
// must be zero-padded ISO; month aggregates rely on the lexical prefix.
const DateLayout = "2006-01-02"

// FallbackCategory is the label uncategorized records aggregate under.
const FallbackCategory = "Other"

type (
	// Expense is a single ledger record. Records are immutable after insert;
	// the only mutation is deletion.
	Expense struct {
		ID       int64
		UserID   int64
		Item     string
		Amount   int64 // so'm, smallest unit, never fractional
		Date     string
		Category string // empty means uncategorized
	}

	// CategoryTotal is an amount aggregated under one category name.
	CategoryTotal struct {
		Category string
		Total    int64
	}
)

var (
	ErrEmptyItem      = errors.New("empty item")
	ErrNegativeAmount = errors.New("negative amount")
	ErrBadDate        = errors.New("invalid date")
)

// Validate checks the invariants every record must satisfy before it reaches
// the store: non-blank item, non-negative amount, canonical date.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Item) == "" {
		return ErrEmptyItem
	}
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, e.Date)
	}
	return nil
}

// Today returns the current local date in canonical form. Records are
// attributed to the deployment's local day at insertion time.
func Today() string {
	return time.Now().Format(DateLayout)
}

// MonthPrefix returns the zero-padded "YYYY-MM-" prefix used by month
// aggregates. Dates that were not stored zero-padded will not match; that is
// the documented contract, not something the store repairs.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}
