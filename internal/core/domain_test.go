package core

import (
	"errors"
	"testing"
)

func TestExpenseValidate(t *testing.T) {
	good := Expense{UserID: 1, Item: "non", Amount: 5000, Date: "2024-03-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		e    Expense
		want error
	}{
		{Expense{UserID: 1, Item: "", Amount: 1, Date: "2024-03-01"}, ErrEmptyItem},
		{Expense{UserID: 1, Item: "   ", Amount: 1, Date: "2024-03-01"}, ErrEmptyItem},
		{Expense{UserID: 1, Item: "non", Amount: -1, Date: "2024-03-01"}, ErrNegativeAmount},
		{Expense{UserID: 1, Item: "non", Amount: 1, Date: "2024-3-1"}, ErrBadDate},
		{Expense{UserID: 1, Item: "non", Amount: 1, Date: ""}, ErrBadDate},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestMonthPrefix(t *testing.T) {
	cases := []struct {
		year, month int
		want        string
	}{
		{2024, 3, "2024-03-"},
		{2024, 12, "2024-12-"},
		{999, 1, "0999-01-"},
	}
	for _, tc := range cases {
		if got := MonthPrefix(tc.year, tc.month); got != tc.want {
			t.Fatalf("MonthPrefix(%d, %d) = %q, want %q", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestTodayIsCanonical(t *testing.T) {
	d := Today()
	if len(d) != 10 || d[4] != '-' || d[7] != '-' {
		t.Fatalf("unexpected date form: %q", d)
	}
}
