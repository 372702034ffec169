// Package services composes validation, the worker pool and the store into
// the operation set the front end calls.
package services

import (
	"context"
	"fmt"

	"github.com/Boburjon2142/technoxisobbot/internal/core"
	"github.com/Boburjon2142/technoxisobbot/internal/dispatch"
	"github.com/Boburjon2142/technoxisobbot/internal/storage"
)

// Ledger is the facade over the expense store. Every method submits its
// store call to the bounded pool, so however many conversations are active
// at once, SQLite sees at most the configured number of workers.
type Ledger struct {
	store *storage.Store
	pool  *dispatch.Pool
}

func NewLedger(store *storage.Store, pool *dispatch.Pool) *Ledger {
	return &Ledger{store: store, pool: pool}
}

// AddExpense validates and appends one record. Validation failures never
// reach the store and never produce a row.
func (l *Ledger) AddExpense(ctx context.Context, userID int64, item string, amount int64, date, category string) error {
	e := core.Expense{UserID: userID, Item: item, Amount: amount, Date: date, Category: category}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate expense: %w", err)
	}
	_, err := dispatch.Do(ctx, l.pool, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, l.store.Insert(ctx, userID, item, amount, date, category)
	})
	return err
}

// AllExpenses returns the user's full ledger in insertion order.
func (l *Ledger) AllExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) ([]core.Expense, error) {
		return l.store.ListAll(ctx, userID)
	})
}

// ExpensesByDate returns records for one canonical YYYY-MM-DD date.
func (l *Ledger) ExpensesByDate(ctx context.Context, userID int64, date string) ([]core.Expense, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) ([]core.Expense, error) {
		return l.store.ListByDate(ctx, userID, date)
	})
}

// ExpensesByMonth returns records for a calendar month, date then id order.
func (l *Ledger) ExpensesByMonth(ctx context.Context, userID int64, year, month int) ([]core.Expense, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) ([]core.Expense, error) {
		return l.store.ListByMonth(ctx, userID, year, month)
	})
}

// MonthTotal returns the month's summed amount, zero when nothing matches.
func (l *Ledger) MonthTotal(ctx context.Context, userID int64, year, month int) (int64, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) (int64, error) {
		return l.store.MonthTotal(ctx, userID, year, month)
	})
}

// MonthByCategory returns the month's per-category breakdown.
func (l *Ledger) MonthByCategory(ctx context.Context, userID int64, year, month int) ([]core.CategoryTotal, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) ([]core.CategoryTotal, error) {
		return l.store.MonthByCategory(ctx, userID, year, month)
	})
}

// LastExpense returns the most recent record, or nil on an empty ledger.
func (l *Ledger) LastExpense(ctx context.Context, userID int64) (*core.Expense, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) (*core.Expense, error) {
		return l.store.LastExpense(ctx, userID)
	})
}

// DeleteByID removes at most one owner-scoped record, returning the count.
func (l *Ledger) DeleteByID(ctx context.Context, userID, id int64) (int64, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) (int64, error) {
		return l.store.DeleteByID(ctx, userID, id)
	})
}

// DeleteAll wipes the user's ledger, returning the number removed.
func (l *Ledger) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return dispatch.Do(ctx, l.pool, func(ctx context.Context) (int64, error) {
		return l.store.DeleteAll(ctx, userID)
	})
}

// Undo removes the user's most recent record and returns it, or nil when the
// ledger is empty or the record vanished in a race. The front end serializes
// per conversation, so the lookup+delete pair does not need a transaction.
func (l *Ledger) Undo(ctx context.Context, userID int64) (*core.Expense, error) {
	last, err := l.LastExpense(ctx, userID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	n, err := l.DeleteByID(ctx, userID, last.ID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return last, nil
}
