// internal/app/features/checkin/routes.go
package checkin

import "github.com/go-chi/chi/v5"

// Routes returns the admin scanner routes, mounted under /admin/checkin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Show)
	r.Post("/", h.Scan)
	return r
}
