// Package formutil provides helpers for form re-rendering with validation
// errors: the user's entered values echoed back plus an inline message.
//
// Example usage:
//
//	type newEventData struct {
//		formutil.Base
//		Title    string
//		Location string
//	}
//
//	// In your handler:
//	data := newEventData{Title: title, Location: loc}
//	formutil.SetBase(&data.Base, r, "Add Event", "/events")
//	data.SetError("Title is required.")
//	templates.Render(w, r, "event_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/mkovarik/kulturhub/internal/app/system/authz"
	"github.com/mkovarik/kulturhub/internal/domain/models"
)

// Base contains common fields for form pages that can be embedded in form
// data structs.
type Base struct {
	SiteName    string
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	BackURL     string
	CurrentPath string
	Error       template.HTML
}

// SetBase populates the common Base fields from the request context.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, _ := authz.UserCtx(r)
	b.SiteName = models.DefaultSiteName
	b.Title = title
	b.IsLoggedIn = true
	b.Role = role
	b.UserName = uname
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
}

// SetError sets the inline error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}
