package finance

import (
	"testing"
	"time"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	if s.Totals.Income != 0 || s.Totals.Expense != 0 || s.Totals.Balance != 0 {
		t.Errorf("expected zero totals, got %+v", s.Totals)
	}
	if len(s.Months) != 0 {
		t.Errorf("expected no month buckets, got %d", len(s.Months))
	}
}

func TestAggregate_Totals(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 1200, Date: date(2026, 1, 10)},
		{Type: models.TransactionIncome, Amount: 300, Date: date(2026, 2, 5)},
		{Type: models.TransactionExpense, Amount: 450.50, Date: date(2026, 1, 20)},
	}

	s := Aggregate(txns)
	if s.Totals.Income != 1500 {
		t.Errorf("income: got %v, want 1500", s.Totals.Income)
	}
	if s.Totals.Expense != 450.50 {
		t.Errorf("expense: got %v, want 450.50", s.Totals.Expense)
	}
	if s.Totals.Balance != 1049.50 {
		t.Errorf("balance: got %v, want 1049.50", s.Totals.Balance)
	}
}

func TestAggregate_MonthBucketsSorted(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TransactionExpense, Amount: 50, Date: date(2026, 3, 1)},
		{Type: models.TransactionIncome, Amount: 100, Date: date(2026, 1, 15)},
		{Type: models.TransactionIncome, Amount: 70, Date: date(2026, 1, 28)},
	}

	s := Aggregate(txns)
	if len(s.Months) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(s.Months))
	}
	if s.Months[0].Month != "2026-01" || s.Months[1].Month != "2026-03" {
		t.Errorf("months not ascending: %+v", s.Months)
	}
	if s.Months[0].Income != 170 {
		t.Errorf("2026-01 income: got %v, want 170", s.Months[0].Income)
	}
	if s.Months[1].Expense != 50 {
		t.Errorf("2026-03 expense: got %v, want 50", s.Months[1].Expense)
	}
}

func TestDisplayPrice(t *testing.T) {
	event := models.Event{MemberPrice: 100, RegularPrice: 250}

	if got := DisplayPrice(models.Registration{Member: true}, event); got != 100 {
		t.Errorf("member price: got %v, want 100", got)
	}
	if got := DisplayPrice(models.Registration{Member: false}, event); got != 250 {
		t.Errorf("regular price: got %v, want 250", got)
	}
}

func TestRevenue_OnlyPaid(t *testing.T) {
	event := models.Event{MemberPrice: 100, RegularPrice: 250}
	regs := []models.Registration{
		{Member: true, Paid: true},   // 100
		{Member: false, Paid: true},  // 250
		{Member: false, Paid: false}, // unpaid, excluded
	}

	if got := Revenue(regs, event); got != 350 {
		t.Errorf("revenue: got %v, want 350", got)
	}
}
