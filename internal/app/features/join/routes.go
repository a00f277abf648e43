// internal/app/features/join/routes.go
package join

import "github.com/go-chi/chi/v5"

// Routes returns the join form routes, mounted under /join.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ShowForm)
	r.Post("/", h.Submit)
	return r
}
