// internal/app/features/finance/csv.go
package finance

import (
	"bytes"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/mkovarik/kulturhub/internal/app/system/csvutil"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.uber.org/zap"
)

// utf8BOM makes Excel open the export with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportVM is the view model for the CSV upload page.
type ImportVM struct {
	viewdata.BaseVM
	Error template.HTML
}

// Export streams the whole ledger as a CSV attachment.
// GET /admin/finance/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "finance export")
	defer cancel()

	txns, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list transactions for export", err, "Unable to export the ledger.", "/admin/finance")
		return
	}

	filename := "transactions-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := w.Write(utf8BOM); err != nil {
		return
	}
	if err := csvutil.WriteTransactionsCSV(w, txns); err != nil {
		h.Log.Error("writing transactions csv failed", zap.Error(err))
	}
}

// ShowImport displays the CSV upload form.
// GET /admin/finance/import
func (h *Handler) ShowImport(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "finance_import", ImportVM{
		BaseVM: viewdata.NewBaseVM(r, "Import Transactions", "/admin/finance"),
	})
}

// Import validates the uploaded CSV in full before inserting anything.
// A file with any bad row is rejected whole.
// POST /admin/finance/import
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "The upload is too large or malformed.", "/admin/finance/import")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "missing upload file", err, "Choose a CSV file to upload.", "/admin/finance/import")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reading upload failed", err, "Unable to read the uploaded file.", "/admin/finance/import")
		return
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	rows, htmlErr, err := csvutil.PreScanTransactionsCSV(bytes.NewReader(data))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "csv pre-scan failed", err, "Unable to read the uploaded file.", "/admin/finance/import")
		return
	}
	if htmlErr != "" {
		templates.Render(w, r, "finance_import", ImportVM{
			BaseVM: viewdata.NewBaseVM(r, "Import Transactions", "/admin/finance"),
			Error:  htmlErr,
		})
		return
	}

	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, models.Transaction{
			Type:        row.Type,
			Amount:      row.Amount,
			Description: row.Description,
			Date:        row.Date,
			Recurring:   row.Recurring,
		})
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "finance import")
	defer cancel()

	if err := h.Store.CreateMany(ctx, txns); err != nil {
		h.ErrLog.LogServerError(w, r, "bulk insert of imported transactions failed", err, "A database error occurred.", "/admin/finance/import")
		return
	}
	http.Redirect(w, r, "/admin/finance?success=imported", http.StatusSeeOther)
}
