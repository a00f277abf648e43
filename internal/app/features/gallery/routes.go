// internal/app/features/gallery/routes.go
package gallery

import "github.com/go-chi/chi/v5"

// PublicRoutes returns the public gallery page, mounted under /gallery.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.PublicGrid)
	return r
}

// AdminRoutes returns the management routes, mounted under /admin/gallery.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Get("/new", h.ShowAdd)
	r.Post("/new", h.Add)
	r.Post("/{id}/delete", h.Delete)
	return r
}
