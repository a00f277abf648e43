// internal/app/features/registrations/mycode.go
package registrations

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/mkovarik/kulturhub/internal/app/system/checkin"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// qrSize is the edge length of the generated QR PNG in pixels.
const qrSize = 256

// codeVM is the view model for the public access-code page.
type codeVM struct {
	viewdata.BaseVM
	Code       string
	Error      string
	Found      bool
	Name       string
	EventTitle string
	QRPath     string
}

// ShowCodeForm displays the access-code entry form.
// GET /mycode
func (h *Handler) ShowCodeForm(w http.ResponseWriter, r *http.Request) {
	vm := codeVM{BaseVM: viewdata.NewBaseVM(r, "My Ticket", "/")}
	templates.Render(w, r, "mycode", vm)
}

// LookupCode resolves an access code to the attendee's QR page.
// POST /mycode
func (h *Handler) LookupCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/mycode")
		return
	}

	code := strings.ToLower(strings.TrimSpace(r.FormValue("code")))

	vm := codeVM{
		BaseVM: viewdata.NewBaseVM(r, "My Ticket", "/"),
		Code:   code,
	}

	if code == "" {
		vm.Error = "Enter the access code from your confirmation email."
		templates.Render(w, r, "mycode", vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "access code lookup")
	defer cancel()

	reg, err := h.Store.GetByAccessCode(ctx, code)
	if err != nil {
		vm.Error = "We couldn't find a registration for that code."
		templates.Render(w, r, "mycode", vm)
		return
	}

	event, err := h.Events.GetByID(ctx, reg.EventID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "event missing for registration", err, "Something went wrong, please try again.", "/mycode")
		return
	}

	vm.Found = true
	vm.Name = reg.Name
	vm.EventTitle = event.Title
	vm.QRPath = "/mycode/qr?code=" + code
	templates.Render(w, r, "mycode", vm)
}

// ServeQR renders the attendee's QR image as a PNG. The payload is the
// same "<name> - <eventID>" string the check-in scanner decodes.
// GET /mycode/qr?code=...
func (h *Handler) ServeQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(strings.TrimSpace(query.Get(r, "code")))
	if code == "" {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "access code lookup")
	defer cancel()

	reg, err := h.Store.GetByAccessCode(ctx, code)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	payload := checkin.Payload(reg.Name, reg.EventID.Hex())
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		h.Log.Error("qr encode failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
