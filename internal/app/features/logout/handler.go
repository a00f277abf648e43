// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/mkovarik/kulturhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler ends the session.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve clears the session and sends the visitor home.
// POST /logout
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
