// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// PublicRoutes returns the public event pages, mounted under /events.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.PublicList)
	r.Get("/{id}", h.Show)
	return r
}

// AdminRoutes returns the management routes, mounted under /admin/events.
// The caller applies the admin role middleware.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Get("/new", h.ShowNew)
	r.Post("/new", h.Create)
	r.Get("/{id}/edit", h.ShowEdit)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
	return r
}
