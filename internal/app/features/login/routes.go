// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns the sign-in routes, mounted under /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ShowForm)
	r.Post("/", h.Submit)
	r.Get("/google", h.GoogleStart)
	r.Get("/google/callback", h.GoogleCallback)
	r.Get("/forgot", h.ShowForgot)
	r.Post("/forgot", h.SubmitForgot)
	r.Get("/reset", h.ShowReset)
	r.Post("/reset", h.SubmitReset)

	return r
}
