// internal/app/features/join/handler.go
package join

import (
	"context"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/mkovarik/kulturhub/internal/app/features/errors"
	requeststore "github.com/mkovarik/kulturhub/internal/app/store/memberrequests"
	memberstore "github.com/mkovarik/kulturhub/internal/app/store/members"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/validators"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public membership application form.
type Handler struct {
	Members  *memberstore.Store
	Requests *requeststore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a join Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Members:  memberstore.New(db),
		Requests: requeststore.New(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// formVM is the view model for the join form.
type formVM struct {
	viewdata.BaseVM
	FullName string
	Email    string
	Phone    string
	Address  string
	Message  string
	Error    string
}

// ShowForm displays the application form.
// GET /join
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	vm := formVM{BaseVM: viewdata.NewBaseVM(r, "Become a Member", "/")}
	templates.Render(w, r, "join_form", vm)
}

// Submit handles the application.
// POST /join
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/join")
		return
	}

	vm := formVM{
		BaseVM:   viewdata.NewBaseVM(r, "Become a Member", "/"),
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Address:  r.FormValue("address"),
		Message:  r.FormValue("message"),
	}

	if msg := h.validate(r.Context(), vm); msg != "" {
		vm.Error = msg
		templates.Render(w, r, "join_form", vm)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "member request create")
	defer cancel()

	req := &models.MemberRequest{
		FullName: vm.FullName,
		Email:    vm.Email,
		Phone:    vm.Phone,
		Address:  vm.Address,
		Message:  vm.Message,
	}
	if err := h.Requests.Create(ctx, req); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create member request", err, "Something went wrong, please try again.", "/join")
		return
	}

	h.Log.Info("membership application received", zap.String("email", req.Email))

	thanks := viewdata.NewBaseVM(r, "Application Received", "/")
	templates.Render(w, r, "join_thanks", thanks)
}

// validate checks the fields and then runs the duplicate lookups for
// email and phone in parallel across both the members and the pending
// requests collections.
func (h *Handler) validate(parent context.Context, vm formVM) string {
	if vm.FullName == "" || vm.Email == "" || vm.Phone == "" {
		return "Name, email and phone are required."
	}
	if !validators.EmailValid(vm.Email) {
		return "That email address doesn't look right."
	}
	if !validators.PhoneValid(vm.Phone) {
		return "That phone number doesn't look right."
	}

	ctx, cancel := context.WithTimeout(parent, timeouts.Medium)
	defer cancel()

	var (
		wg                       sync.WaitGroup
		emailTaken, phoneTaken   bool
		emailReqDup, phoneReqDup bool
		mu                       sync.Mutex
		firstErr                 error
	)

	check := func(f func() (bool, error), target *bool) {
		defer wg.Done()
		ok, err := f()
		mu.Lock()
		defer mu.Unlock()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		*target = ok
	}

	wg.Add(4)
	go check(func() (bool, error) { return h.Members.ExistsByEmail(ctx, vm.Email) }, &emailTaken)
	go check(func() (bool, error) { return h.Members.ExistsByPhone(ctx, vm.Phone) }, &phoneTaken)
	go check(func() (bool, error) { return h.Requests.ExistsByEmail(ctx, vm.Email) }, &emailReqDup)
	go check(func() (bool, error) { return h.Requests.ExistsByPhone(ctx, vm.Phone) }, &phoneReqDup)
	wg.Wait()

	if firstErr != nil {
		h.Log.Error("duplicate check failed", zap.Error(firstErr))
		return "Something went wrong, please try again."
	}
	if emailTaken || emailReqDup {
		return "This email address is already registered with us."
	}
	if phoneTaken || phoneReqDup {
		return "This phone number is already registered with us."
	}
	return ""
}
