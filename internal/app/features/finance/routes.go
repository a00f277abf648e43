// internal/app/features/finance/routes.go
package finance

import "github.com/go-chi/chi/v5"

// Routes returns the treasurer routes, mounted under /admin/finance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/new", h.ShowNew)
	r.Post("/new", h.Create)
	r.Get("/export", h.Export)
	r.Get("/import", h.ShowImport)
	r.Post("/import", h.Import)
	r.Get("/{id}/edit", h.ShowEdit)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)

	return r
}
