package aggregate

import (
	"testing"
	"time"

	"finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(kind, category, amount, day string) models.Transaction {
	return models.Transaction{
		Kind:       kind,
		Category:   category,
		Amount:     decimal.RequireFromString(amount),
		OccurredOn: date(day),
	}
}

func TestTotalsByKind_Empty(t *testing.T) {
	totals := TotalsByKind(nil)

	if !totals.Income.IsZero() || !totals.Expense.IsZero() || !totals.Balance.IsZero() {
		t.Errorf("empty input should give zero totals, got %+v", totals)
	}
}

func TestTotalsByKind_IncomeExpenseBalance(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "Salary", "5000000", "2025-01-10"),
		tx(models.KindExpense, "Food", "2000000", "2025-01-12"),
	}

	totals := TotalsByKind(txs)

	if got, want := totals.Income.String(), "5000000"; got != want {
		t.Errorf("income = %s, want %s", got, want)
	}
	if got, want := totals.Expense.String(), "2000000"; got != want {
		t.Errorf("expense = %s, want %s", got, want)
	}
	if got, want := totals.Balance.String(), "3000000"; got != want {
		t.Errorf("balance = %s, want %s", got, want)
	}
}

// Amounts with two fractional digits must sum without float drift.
func TestTotalsByKind_DecimalExact(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "A", "0.10", "2025-03-01"),
		tx(models.KindIncome, "A", "0.20", "2025-03-02"),
		tx(models.KindExpense, "B", "0.30", "2025-03-03"),
	}

	totals := TotalsByKind(txs)

	if !totals.Income.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("income = %s, want 0.30", totals.Income)
	}
	if !totals.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", totals.Balance)
	}
}

func TestTotalsByKind_BalanceIdentity(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "A", "123.45", "2025-01-01"),
		tx(models.KindExpense, "B", "67.89", "2025-02-01"),
		tx(models.KindIncome, "C", "0.01", "2025-03-01"),
		tx(models.KindExpense, "D", "999999.99", "2025-04-01"),
	}

	totals := TotalsByKind(txs)

	if !totals.Balance.Equal(totals.Income.Sub(totals.Expense)) {
		t.Errorf("balance %s != income %s - expense %s",
			totals.Balance, totals.Income, totals.Expense)
	}
}

func TestMonthlySeries_AlwaysTwelveBuckets(t *testing.T) {
	inputs := [][]models.Transaction{
		nil,
		{tx(models.KindIncome, "Salary", "100", "2025-06-15")},
		{
			tx(models.KindIncome, "Salary", "100", "2025-01-01"),
			tx(models.KindExpense, "Rent", "50", "2025-12-31"),
			tx(models.KindIncome, "Bonus", "25", "2024-06-01"), // other year
		},
	}

	for i, txs := range inputs {
		series := MonthlySeries(txs, 2025)
		if len(series) != 12 {
			t.Fatalf("case %d: got %d buckets, want 12", i, len(series))
		}
		for m, b := range series {
			if b.Month != time.Month(m+1) {
				t.Errorf("case %d: bucket %d has month %v", i, m, b.Month)
			}
		}
	}
}

func TestMonthlySeries_EmptyMonthsAreZero(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "Salary", "100.50", "2025-06-15"),
	}

	series := MonthlySeries(txs, 2025)

	for m, b := range series {
		if time.Month(m+1) == time.June {
			if !b.Income.Equal(decimal.RequireFromString("100.50")) {
				t.Errorf("june income = %s, want 100.50", b.Income)
			}
			continue
		}
		if !b.Income.IsZero() || !b.Expense.IsZero() {
			t.Errorf("month %v should be zero, got income=%s expense=%s",
				b.Month, b.Income, b.Expense)
		}
	}
}

// Within one reference year, the bucket sums must equal the totals.
func TestMonthlySeries_SumMatchesTotals(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "Salary", "5000000", "2025-01-10"),
		tx(models.KindIncome, "Salary", "5000000", "2025-02-10"),
		tx(models.KindExpense, "Rent", "1500000", "2025-02-01"),
		tx(models.KindExpense, "Food", "250000.75", "2025-11-20"),
	}

	series := MonthlySeries(txs, 2025)
	totals := TotalsByKind(txs)

	sumIncome := decimal.Zero
	sumExpense := decimal.Zero
	for _, b := range series {
		sumIncome = sumIncome.Add(b.Income)
		sumExpense = sumExpense.Add(b.Expense)
	}

	if !sumIncome.Equal(totals.Income) {
		t.Errorf("bucket income sum = %s, totals income = %s", sumIncome, totals.Income)
	}
	if !sumExpense.Equal(totals.Expense) {
		t.Errorf("bucket expense sum = %s, totals expense = %s", sumExpense, totals.Expense)
	}
}

func TestMonthlySeries_FiltersByYear(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "Salary", "100", "2024-06-15"),
		tx(models.KindIncome, "Salary", "200", "2025-06-15"),
	}

	series := MonthlySeries(txs, 2025)

	if !series[5].Income.Equal(decimal.RequireFromString("200")) {
		t.Errorf("june 2025 income = %s, want 200", series[5].Income)
	}
}

func TestCategoryBreakdown_GroupsAndSums(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindExpense, "Food", "10.25", "2025-01-01"),
		tx(models.KindExpense, "Food", "4.75", "2025-01-02"),
		tx(models.KindExpense, "Rent", "800", "2025-01-03"),
		tx(models.KindIncome, "Salary", "5000", "2025-01-04"),
	}

	breakdown := CategoryBreakdown(txs, models.KindExpense)

	if len(breakdown) != 2 {
		t.Fatalf("got %d groups, want 2", len(breakdown))
	}
	if !breakdown["Food"].Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("food = %s, want 15.00", breakdown["Food"])
	}
	if !breakdown["Rent"].Equal(decimal.RequireFromString("800")) {
		t.Errorf("rent = %s, want 800", breakdown["Rent"])
	}
}

func TestCategoryBreakdown_StableAcrossCalls(t *testing.T) {
	txs := []models.Transaction{
		tx(models.KindIncome, "Salary", "100.10", "2025-01-01"),
		tx(models.KindIncome, "Salary", "200.20", "2025-01-02"),
		tx(models.KindIncome, "Gift", "50", "2025-01-03"),
	}

	first := CategoryBreakdown(txs, models.KindIncome)
	second := CategoryBreakdown(txs, models.KindIncome)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for cat, sum := range first {
		if !second[cat].Equal(sum) {
			t.Errorf("category %q: %s vs %s", cat, sum, second[cat])
		}
	}
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	breakdown := CategoryBreakdown(nil, models.KindExpense)

	if len(breakdown) != 0 {
		t.Errorf("empty input should give empty breakdown, got %v", breakdown)
	}
}
