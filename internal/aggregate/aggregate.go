// Package aggregate derives display views from a transaction collection.
// Every function is a pure transformation of its input: no storage, no
// state, exact decimal arithmetic throughout.
package aggregate

import (
	"time"

	"finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

// Totals holds the three headline figures of a ledger.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// TotalsByKind sums amounts per kind. Balance is always exactly
// Income minus Expense. An empty input yields all zeros.
func TotalsByKind(txs []models.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for i := range txs {
		if txs[i].Kind == models.KindIncome {
			income = income.Add(txs[i].Amount)
		} else {
			expense = expense.Add(txs[i].Amount)
		}
	}
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// MonthBucket accumulates one calendar month of a yearly series.
type MonthBucket struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlySeries buckets transactions of the reference year into exactly
// twelve entries, January through December. Months without transactions
// hold zero, so chart consumers never see a missing bucket.
func MonthlySeries(txs []models.Transaction, year int) [12]MonthBucket {
	var series [12]MonthBucket
	for i := range series {
		series[i] = MonthBucket{
			Month:   time.Month(i + 1),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for i := range txs {
		if txs[i].OccurredOn.Year() != year {
			continue
		}
		b := &series[int(txs[i].OccurredOn.Month())-1]
		if txs[i].Kind == models.KindIncome {
			b.Income = b.Income.Add(txs[i].Amount)
		} else {
			b.Expense = b.Expense.Add(txs[i].Amount)
		}
	}
	return series
}

// CategoryBreakdown groups transactions of the given kind by category and
// sums each group. Map iteration order is unspecified; the per-category
// totals are deterministic for a given input.
func CategoryBreakdown(txs []models.Transaction, kind string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for i := range txs {
		if txs[i].Kind != kind {
			continue
		}
		sum, ok := out[txs[i].Category]
		if !ok {
			sum = decimal.Zero
		}
		out[txs[i].Category] = sum.Add(txs[i].Amount)
	}
	return out
}
