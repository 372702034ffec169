package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Boburjon2142/technoxisobbot/internal/core"
)

// Insert appends one expense record for userID. The caller validates input
// first; the store still re-checks the hard invariants so a malformed record
// can never reach disk. category may be empty.
func (s *Store) Insert(ctx context.Context, userID int64, item string, amount int64, date, category string) error {
	if strings.TrimSpace(item) == "" {
		return core.ErrEmptyItem
	}
	if amount < 0 {
		return core.ErrNegativeAmount
	}

	var cat sql.NullString
	if category != "" {
		cat = sql.NullString{String: category, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (user_id, item, amount, date, category) VALUES (?, ?, ?, ?, ?)",
		userID, item, amount, date, cat,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"user_id", userID,
		"item", item,
		"amount", amount,
		"date", date)

	return nil
}

// ListAll returns every record owned by userID in insertion order.
func (s *Store) ListAll(ctx context.Context, userID int64) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT id, user_id, item, amount, date, category FROM expenses WHERE user_id = ? ORDER BY id ASC",
		userID,
	)
}

// ListByDate returns userID's records whose date equals the canonical
// YYYY-MM-DD string exactly, in insertion order.
func (s *Store) ListByDate(ctx context.Context, userID int64, date string) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT id, user_id, item, amount, date, category FROM expenses WHERE user_id = ? AND date = ? ORDER BY id ASC",
		userID, date,
	)
}

// ListByMonth returns userID's records for the given calendar month, ordered
// by date then insertion order.
func (s *Store) ListByMonth(ctx context.Context, userID int64, year, month int) ([]core.Expense, error) {
	return s.list(ctx,
		"SELECT id, user_id, item, amount, date, category FROM expenses WHERE user_id = ? AND date LIKE ? ORDER BY date ASC, id ASC",
		userID, core.MonthPrefix(year, month)+"%",
	)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e   core.Expense
			cat sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Item, &e.Amount, &e.Date, &cat); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Category = cat.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// MonthTotal returns the sum of amounts over userID's records in the given
// calendar month. Zero, not an error, when nothing matches.
func (s *Store) MonthTotal(ctx context.Context, userID int64, year, month int) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND date LIKE ?",
		userID, core.MonthPrefix(year, month)+"%",
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("month total: %w", err)
	}
	return total, nil
}

// MonthByCategory returns per-category sums for the month, descending by
// total with category name breaking ties. NULL and blank categories fold
// into core.FallbackCategory.
func (s *Store) MonthByCategory(ctx context.Context, userID int64, year, month int) ([]core.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(category, ''), ?) AS cat, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE user_id = ? AND date LIKE ?
		GROUP BY cat
		ORDER BY total DESC, cat ASC`,
		core.FallbackCategory, userID, core.MonthPrefix(year, month)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("month category totals: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return out, nil
}

// LastExpense returns userID's most recent record by id, or (nil, nil) when
// the ledger is empty. Absence is normal control flow, not a failure.
func (s *Store) LastExpense(ctx context.Context, userID int64) (*core.Expense, error) {
	var (
		e   core.Expense
		cat sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, item, amount, date, category FROM expenses WHERE user_id = ? ORDER BY id DESC LIMIT 1",
		userID,
	).Scan(&e.ID, &e.UserID, &e.Item, &e.Amount, &e.Date, &cat)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last expense: %w", err)
	}
	e.Category = cat.String
	return &e, nil
}

// DeleteByID deletes at most one record, scoped to its owner: another user's
// record cannot be removed even with a guessed id. Returns rows removed
// (0 or 1); 0 means not found or not owned.
func (s *Store) DeleteByID(ctx context.Context, userID, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE user_id = ? AND id = ?",
		userID, id,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Expense deleted", "user_id", userID, "id", id)
	}
	return n, nil
}

// DeleteAll removes every record owned by userID and returns the count.
func (s *Store) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("delete all expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all rows affected: %w", err)
	}
	slog.InfoContext(ctx, "Ledger cleared", "user_id", userID, "removed", n)
	return n, nil
}
