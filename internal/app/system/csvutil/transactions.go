// internal/app/system/csvutil/transactions.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

// TransactionHeader is the stable column order for export and import.
var TransactionHeader = []string{"date", "description", "amount", "type", "recurring"}

// dateLayout is the on-file date format.
const dateLayout = "2006-01-02"

// TransactionCSVRow is the normalized row produced by PreScanTransactionsCSV.
type TransactionCSVRow struct {
	Date        time.Time
	Description string
	Amount      float64
	Type        string // canonical: income | expense
	Recurring   bool
}

// PreScanTransactionsCSV reads all rows from r, skips a header if present,
// validates each row, and either returns normalized rows OR a formatted
// HTML error message describing the first few bad lines. It never writes to
// the DB; the whole file is rejected before any mutation.
func PreScanTransactionsCSV(r io.Reader) (rows []TransactionCSVRow, htmlErr template.HTML, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Pull first row to check header
	first, ferr := reader.Read()
	if ferr == io.EOF {
		first = nil
	} else if ferr != nil {
		return nil, template.HTML(template.HTMLEscapeString(ferr.Error())), nil
	}
	var raw [][]string
	if len(first) >= 3 &&
		strings.EqualFold(strings.TrimSpace(first[0]), "date") &&
		strings.EqualFold(strings.TrimSpace(first[1]), "description") {
		// header detected → skip
	} else if first != nil {
		raw = append(raw, first)
	}
	for {
		rec, e := reader.Read()
		if e == io.EOF {
			break
		}
		if e != nil || len(rec) == 0 {
			continue
		}
		raw = append(raw, rec)
		if len(raw) > MaxRows {
			return nil, template.HTML(fmt.Sprintf("Upload rejected: more than %d rows.", MaxRows)), nil
		}
	}

	type rowErr struct{ Line, Reason string }
	var errs []rowErr

	for _, rec := range raw {
		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		dateStr, desc, amountStr := field(0), field(1), field(2)
		typeStr, recurringStr := strings.ToLower(field(3)), field(4)

		if dateStr == "" && desc == "" && amountStr == "" {
			continue // blank line
		}

		bad := func(reason string) {
			errs = append(errs, rowErr{Line: strings.Join(rec, " | "), Reason: reason})
		}

		if dateStr == "" {
			bad("missing date")
			continue
		}
		date, derr := time.Parse(dateLayout, dateStr)
		if derr != nil {
			bad("date must be YYYY-MM-DD")
			continue
		}
		if desc == "" {
			bad("missing description")
			continue
		}
		if amountStr == "" {
			bad("missing amount")
			continue
		}
		amount, aerr := strconv.ParseFloat(amountStr, 64)
		if aerr != nil || amount < 0 {
			bad("amount must be a non-negative number")
			continue
		}
		switch typeStr {
		case models.TransactionIncome, models.TransactionExpense:
			// ok
		case "":
			typeStr = models.TransactionExpense
		default:
			bad(`type must be "income" or "expense"`)
			continue
		}

		// Spreadsheet exports write booleans as TRUE/FALSE.
		recurring := strings.EqualFold(recurringStr, "true")

		rows = append(rows, TransactionCSVRow{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Type:        typeStr,
			Recurring:   recurring,
		})
	}

	if len(errs) > 0 {
		var b strings.Builder
		b.WriteString("Upload rejected: one or more rows are invalid.<br>")
		b.WriteString("Each row must have a date (YYYY-MM-DD), a description, and a numeric amount.<br>")

		max := 5
		if len(errs) < max {
			max = len(errs)
		}
		if max > 0 {
			b.WriteString("Examples:<br>")
			for i := 0; i < max; i++ {
				e := errs[i]
				b.WriteString("• ")
				b.WriteString(template.HTMLEscapeString(e.Line))
				b.WriteString(" → ")
				b.WriteString(template.HTMLEscapeString(e.Reason))
				b.WriteString("<br>")
			}
		}
		return nil, template.HTML(b.String()), nil
	}

	return rows, "", nil
}

// WriteTransactionsCSV writes txns to w in the export column order.
// The caller is responsible for the BOM and Content-Disposition headers.
func WriteTransactionsCSV(w io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	if err := cw.Write(TransactionHeader); err != nil {
		return err
	}
	for _, t := range txns {
		recurring := "FALSE"
		if t.Recurring {
			recurring = "TRUE"
		}
		rec := []string{
			t.Date.Format(dateLayout),
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Type,
			recurring,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
