// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns the membership back-office routes, mounted under
// /admin/members. The caller applies the admin role middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/requests", h.ListRequests)
	r.Post("/requests/{id}/approve", h.Approve)
	r.Post("/requests/{id}/reject", h.Reject)
	r.Get("/{id}/edit", h.ShowEdit)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/processed", h.ToggleProcessed)
	r.Post("/{id}/delete", h.Delete)
	return r
}
