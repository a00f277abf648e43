// internal/app/features/registrations/routes.go
package registrations

import "github.com/go-chi/chi/v5"

// AdminRoutes returns the attendee management routes, mounted under
// /admin/events/{eventID}/registrations. The caller applies the admin
// role middleware.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/new", h.ShowNew)
	r.Post("/new", h.Create)
	r.Get("/{id}/edit", h.ShowEdit)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/arrived", h.ToggleArrived)
	r.Post("/{id}/paid", h.TogglePaid)
	r.Post("/{id}/delete", h.Delete)
	return r
}

// PublicRoutes returns the attendee-facing access code pages, mounted
// under /mycode.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ShowCodeForm)
	r.Post("/", h.LookupCode)
	r.Get("/qr", h.ServeQR)
	return r
}
