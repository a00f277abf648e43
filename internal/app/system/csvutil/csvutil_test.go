package csvutil

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

func TestPreScanTransactionsCSV_Valid(t *testing.T) {
	in := strings.NewReader(
		"date,description,amount,type,recurring\n" +
			"2026-01-10,Hall rent,450.50,expense,TRUE\n" +
			"2026-02-05,Membership fees,300,income,FALSE\n")

	rows, htmlErr, err := PreScanTransactionsCSV(in)
	if err != nil {
		t.Fatalf("PreScan failed: %v", err)
	}
	if htmlErr != "" {
		t.Fatalf("unexpected validation error: %s", htmlErr)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].Description != "Hall rent" || rows[0].Amount != 450.50 || rows[0].Type != "expense" {
		t.Errorf("row 0: %+v", rows[0])
	}
	if !rows[0].Recurring {
		t.Error("row 0: expected recurring TRUE coerced to bool")
	}
	if rows[1].Recurring {
		t.Error("row 1: expected recurring FALSE coerced to bool")
	}
}

func TestPreScanTransactionsCSV_NoHeader(t *testing.T) {
	in := strings.NewReader("2026-01-10,Hall rent,450.50,expense,\n")

	rows, htmlErr, err := PreScanTransactionsCSV(in)
	if err != nil || htmlErr != "" {
		t.Fatalf("PreScan failed: %v %s", err, htmlErr)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
}

func TestPreScanTransactionsCSV_RejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"missing date", ",Hall rent,450.50,expense,"},
		{"bad date", "10.01.2026,Hall rent,450.50,expense,"},
		{"missing description", "2026-01-10,,450.50,expense,"},
		{"missing amount", "2026-01-10,Hall rent,,expense,"},
		{"non-numeric amount", "2026-01-10,Hall rent,lots,expense,"},
		{"bad type", "2026-01-10,Hall rent,450.50,transfer,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, htmlErr, err := PreScanTransactionsCSV(strings.NewReader(tt.row + "\n"))
			if err != nil {
				t.Fatalf("PreScan failed: %v", err)
			}
			if htmlErr == "" {
				t.Fatalf("expected validation error, got rows %+v", rows)
			}
			if rows != nil {
				t.Error("expected no rows when file is rejected")
			}
		})
	}
}

func TestPreScanTransactionsCSV_SkipsBlankLines(t *testing.T) {
	in := strings.NewReader("2026-01-10,Hall rent,450.50,expense,\n,,,,\n")

	rows, htmlErr, err := PreScanTransactionsCSV(in)
	if err != nil || htmlErr != "" {
		t.Fatalf("PreScan failed: %v %s", err, htmlErr)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
}

func TestTransactionsCSV_RoundTrip(t *testing.T) {
	txns := []models.Transaction{
		{
			Type:        models.TransactionExpense,
			Amount:      450.50,
			Description: "Hall rent",
			Date:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			Recurring:   true,
		},
		{
			Type:        models.TransactionIncome,
			Amount:      300,
			Description: "Membership fees",
			Date:        time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteTransactionsCSV(&buf, txns); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rows, htmlErr, err := PreScanTransactionsCSV(&buf)
	if err != nil || htmlErr != "" {
		t.Fatalf("PreScan of exported file failed: %v %s", err, htmlErr)
	}
	if len(rows) != len(txns) {
		t.Fatalf("rows: got %d, want %d", len(rows), len(txns))
	}
	for i := range txns {
		if rows[i].Description != txns[i].Description ||
			rows[i].Amount != txns[i].Amount ||
			rows[i].Type != txns[i].Type ||
			rows[i].Recurring != txns[i].Recurring ||
			!rows[i].Date.Equal(txns[i].Date) {
			t.Errorf("row %d: got %+v, want %+v", i, rows[i], txns[i])
		}
	}
}
