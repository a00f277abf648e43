// internal/app/features/finance/ledger.go
package finance

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	financesys "github.com/mkovarik/kulturhub/internal/app/system/finance"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const dateInputLayout = "2006-01-02"

type txnRow struct {
	ID          string
	Type        string
	Amount      string
	Description string
	Date        string
	Recurring   bool
}

// LedgerVM is the view model for the finance overview page.
type LedgerVM struct {
	viewdata.BaseVM
	Summary      financesys.Summary
	Transactions []txnRow
	Success      string
}

type txnFormData struct {
	viewdata.BaseVM
	ID          string
	Type        string
	Amount      string
	Description string
	Date        string
	Recurring   bool
	Error       string
	Action      string
}

// List shows the ledger with the recomputed summary on top.
// GET /admin/finance
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "finance list")
	defer cancel()

	txns, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list transactions", err, "Unable to load the ledger.", "/dashboard")
		return
	}

	rows := make([]txnRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, txnRow{
			ID:          t.ID.Hex(),
			Type:        t.Type,
			Amount:      formatAmount(t.Amount),
			Description: t.Description,
			Date:        t.Date.Format(dateInputLayout),
			Recurring:   t.Recurring,
		})
	}

	templates.Render(w, r, "finance_list", LedgerVM{
		BaseVM:       viewdata.NewBaseVM(r, "Finance", "/dashboard"),
		Summary:      financesys.Aggregate(txns),
		Transactions: rows,
		Success:      query.Get(r, "success"),
	})
}

// ShowNew displays the empty transaction form.
// GET /admin/finance/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "transaction_form", txnFormData{
		BaseVM: viewdata.NewBaseVM(r, "New Transaction", "/admin/finance"),
		Type:   models.TransactionExpense,
		Date:   time.Now().Format(dateInputLayout),
		Action: "/admin/finance/new",
	})
}

// Create stores a new transaction.
// POST /admin/finance/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	txn, form, msg := h.txnFromForm(w, r)
	if txn == nil && msg == "" {
		return
	}
	if msg != "" {
		form.BaseVM = viewdata.NewBaseVM(r, "New Transaction", "/admin/finance")
		form.Error = msg
		form.Action = "/admin/finance/new"
		templates.Render(w, r, "transaction_form", form)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "create transaction")
	defer cancel()

	if err := h.Store.Create(ctx, txn); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create transaction", err, "A database error occurred.", "/admin/finance")
		return
	}
	http.Redirect(w, r, "/admin/finance?success=created", http.StatusSeeOther)
}

// ShowEdit displays the form pre-filled with an existing transaction.
// GET /admin/finance/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	txn, ok := h.loadTransaction(w, r)
	if !ok {
		return
	}

	templates.Render(w, r, "transaction_form", txnFormData{
		BaseVM:      viewdata.NewBaseVM(r, "Edit Transaction", "/admin/finance"),
		ID:          txn.ID.Hex(),
		Type:        txn.Type,
		Amount:      formatAmount(txn.Amount),
		Description: txn.Description,
		Date:        txn.Date.Format(dateInputLayout),
		Recurring:   txn.Recurring,
		Action:      "/admin/finance/" + txn.ID.Hex(),
	})
}

// Update saves changes to an existing transaction.
// POST /admin/finance/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.loadTransaction(w, r)
	if !ok {
		return
	}

	txn, form, msg := h.txnFromForm(w, r)
	if txn == nil && msg == "" {
		return
	}
	if msg != "" {
		form.BaseVM = viewdata.NewBaseVM(r, "Edit Transaction", "/admin/finance")
		form.ID = existing.ID.Hex()
		form.Error = msg
		form.Action = "/admin/finance/" + existing.ID.Hex()
		templates.Render(w, r, "transaction_form", form)
		return
	}

	txn.ID = existing.ID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "update transaction")
	defer cancel()

	if err := h.Store.Update(ctx, txn); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to update transaction", err, "A database error occurred.", "/admin/finance")
		return
	}
	http.Redirect(w, r, "/admin/finance?success=updated", http.StatusSeeOther)
}

// Delete removes a transaction.
// POST /admin/finance/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	txn, ok := h.loadTransaction(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "delete transaction")
	defer cancel()

	if err := h.Store.Delete(ctx, txn.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete transaction", err, "A database error occurred.", "/admin/finance")
		return
	}
	http.Redirect(w, r, "/admin/finance?success=deleted", http.StatusSeeOther)
}

// txnFromForm parses and validates the shared new/edit form. A nil txn
// with an empty msg means the error was already written to w.
func (h *Handler) txnFromForm(w http.ResponseWriter, r *http.Request) (*models.Transaction, txnFormData, string) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/finance")
		return nil, txnFormData{}, ""
	}

	form := txnFormData{
		Type:        strings.TrimSpace(r.FormValue("type")),
		Amount:      strings.TrimSpace(r.FormValue("amount")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Recurring:   r.FormValue("recurring") != "",
	}

	if form.Type != models.TransactionIncome && form.Type != models.TransactionExpense {
		return nil, form, "Choose income or expense."
	}
	if form.Description == "" {
		return nil, form, "Description is required."
	}
	if form.Date == "" {
		return nil, form, "Date is required."
	}
	date, err := time.ParseInLocation(dateInputLayout, form.Date, time.Local)
	if err != nil {
		return nil, form, "Date must be in YYYY-MM-DD format."
	}
	amount, err := parseAmount(form.Amount)
	if err != nil || amount < 0 {
		return nil, form, "Amount must be a non-negative number."
	}

	return &models.Transaction{
		Type:        form.Type,
		Amount:      amount,
		Description: form.Description,
		Date:        date,
		Recurring:   form.Recurring,
	}, form, ""
}

// loadTransaction resolves the {id} URL parameter. A false return means
// the response has been written.
func (h *Handler) loadTransaction(w http.ResponseWriter, r *http.Request) (*models.Transaction, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "invalid transaction id", "Transaction not found.", "/admin/finance")
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "load transaction")
	defer cancel()

	txn, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogNotFound(w, r, "transaction not found", "Transaction not found.", "/admin/finance")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to load transaction", err, "A database error occurred.", "/admin/finance")
		return nil, false
	}
	return txn, true
}

// parseAmount tolerates a comma decimal separator, same as the event
// price fields.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
