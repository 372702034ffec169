package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Boburjon2142/technoxisobbot/internal/core"
	"github.com/Boburjon2142/technoxisobbot/internal/dispatch"
	"github.com/Boburjon2142/technoxisobbot/internal/storage"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewLedger(store, dispatch.NewPool(2, 5*time.Second))
}

func TestAddExpenseAndList(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if err := l.AddExpense(ctx, 1, "non", 5000, "2024-03-01", ""); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if err := l.AddExpense(ctx, 1, "qahva", 12000, "2024-03-01", "Ichimlik"); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	rows, err := l.AllExpenses(ctx, 1)
	if err != nil {
		t.Fatalf("all expenses: %v", err)
	}
	if len(rows) != 2 || rows[0].Item != "non" || rows[1].Item != "qahva" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAddExpenseValidationShortCircuits(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if err := l.AddExpense(ctx, 1, "", 100, "2024-03-01", ""); !errors.Is(err, core.ErrEmptyItem) {
		t.Fatalf("expected ErrEmptyItem, got %v", err)
	}
	if err := l.AddExpense(ctx, 1, "non", -1, "2024-03-01", ""); !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if err := l.AddExpense(ctx, 1, "non", 100, "bad-date", ""); !errors.Is(err, core.ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}

	rows, err := l.AllExpenses(ctx, 1)
	if err != nil {
		t.Fatalf("all expenses: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected input must not produce rows: %+v", rows)
	}
}

func TestMonthQueriesThroughFacade(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	seed := []struct {
		item   string
		amount int64
		date   string
	}{
		{"bread", 5000, "2024-03-01"},
		{"coffee", 12000, "2024-03-15"},
		{"rent", 500000, "2024-04-01"},
	}
	for _, e := range seed {
		if err := l.AddExpense(ctx, 1, e.item, e.amount, e.date, ""); err != nil {
			t.Fatalf("add %q: %v", e.item, err)
		}
	}

	total, err := l.MonthTotal(ctx, 1, 2024, 3)
	if err != nil || total != 17000 {
		t.Fatalf("month total: %d, %v", total, err)
	}

	byCat, err := l.MonthByCategory(ctx, 1, 2024, 3)
	if err != nil {
		t.Fatalf("month by category: %v", err)
	}
	if len(byCat) != 1 || byCat[0].Category != core.FallbackCategory || byCat[0].Total != 17000 {
		t.Fatalf("expected {Other 17000}, got %+v", byCat)
	}

	day, err := l.ExpensesByDate(ctx, 1, "2024-03-01")
	if err != nil || len(day) != 1 || day[0].Item != "bread" || day[0].Amount != 5000 {
		t.Fatalf("expenses by date: %+v, %v", day, err)
	}
}

func TestUndo(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	removed, err := l.Undo(ctx, 1)
	if err != nil || removed != nil {
		t.Fatalf("undo on empty ledger: %+v, %v", removed, err)
	}

	if err := l.AddExpense(ctx, 1, "a", 100, "2024-03-01", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.AddExpense(ctx, 1, "b", 200, "2024-03-01", ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	removed, err = l.Undo(ctx, 1)
	if err != nil || removed == nil || removed.Item != "b" {
		t.Fatalf("undo should remove b: %+v, %v", removed, err)
	}

	last, err := l.LastExpense(ctx, 1)
	if err != nil || last == nil || last.Item != "a" {
		t.Fatalf("a should remain last: %+v, %v", last, err)
	}
}

func TestDeleteAllThroughFacade(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := l.AddExpense(ctx, 1, "x", 100, "2024-03-01", ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	n, err := l.DeleteAll(ctx, 1)
	if err != nil || n != 4 {
		t.Fatalf("delete all: n=%d err=%v", n, err)
	}
	n, err = l.DeleteAll(ctx, 1)
	if err != nil || n != 0 {
		t.Fatalf("second delete all: n=%d err=%v", n, err)
	}
}
