// internal/app/system/finance/finance.go

// Package finance computes the association's financial aggregates and
// event revenue. Everything here is a pure function over immutable slices
// so the numbers are testable without the UI or the database.
package finance

import (
	"sort"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

// Totals are the headline numbers on the finance page.
type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

// MonthSum is one bucket of the per-month breakdown.
type MonthSum struct {
	Month   string // "2026-01"
	Income  float64
	Expense float64
}

// Summary is the full aggregate recomputed on every render.
type Summary struct {
	Totals Totals
	Months []MonthSum // ascending by month
}

// Aggregate sums the transaction list into totals and month buckets.
func Aggregate(txns []models.Transaction) Summary {
	var s Summary
	byMonth := make(map[string]*MonthSum)

	for _, t := range txns {
		key := t.Date.Format("2006-01")
		b := byMonth[key]
		if b == nil {
			b = &MonthSum{Month: key}
			byMonth[key] = b
		}

		switch t.Type {
		case models.TransactionIncome:
			s.Totals.Income += t.Amount
			b.Income += t.Amount
		case models.TransactionExpense:
			s.Totals.Expense += t.Amount
			b.Expense += t.Amount
		}
	}
	s.Totals.Balance = s.Totals.Income - s.Totals.Expense

	s.Months = make([]MonthSum, 0, len(byMonth))
	for _, b := range byMonth {
		s.Months = append(s.Months, *b)
	}
	sort.Slice(s.Months, func(i, j int) bool { return s.Months[i].Month < s.Months[j].Month })

	return s
}

// DisplayPrice is what one registration owes: the member tier when the
// member flag is set, the regular tier otherwise.
func DisplayPrice(reg models.Registration, event models.Event) float64 {
	if reg.Member {
		return event.MemberPrice
	}
	return event.RegularPrice
}

// Revenue totals DisplayPrice over the registrations that have paid.
func Revenue(regs []models.Registration, event models.Event) float64 {
	var total float64
	for _, reg := range regs {
		if reg.Paid {
			total += DisplayPrice(reg, event)
		}
	}
	return total
}
