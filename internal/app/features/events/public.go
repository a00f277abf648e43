// internal/app/features/events/public.go
package events

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"github.com/mkovarik/kulturhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// eventRow is one event in the public listing.
type eventRow struct {
	ID           string
	Title        string
	Date         string
	Location     string
	MemberPrice  float64
	RegularPrice float64
}

// ListVM is the view model for the public events page.
type ListVM struct {
	viewdata.BaseVM
	Upcoming []eventRow
	Past     []eventRow
}

// PublicList displays upcoming and past events.
// GET /events
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "events list")
	defer cancel()

	events, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list events", err, "Unable to load events.", "/")
		return
	}

	upcoming, past := eventstore.Partition(events, time.Now())

	// Past events read better newest first.
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}

	vm := ListVM{
		BaseVM:   viewdata.NewBaseVM(r, "Events", "/"),
		Upcoming: toRows(upcoming),
		Past:     toRows(past),
	}

	templates.Render(w, r, "events_list", vm)
}

// ShowVM is the view model for a single public event page.
type ShowVM struct {
	viewdata.BaseVM
	ID           string
	EventTitle   string
	Date         string
	Location     string
	Description  template.HTML
	MemberPrice  float64
	RegularPrice float64
	BrochureURL  string
	Background   string
	IsPast       bool
}

// Show displays a single event.
// GET /events/{id}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "event lookup")
	defer cancel()

	ev, err := h.Store.GetByID(ctx, objID)
	if err != nil {
		h.Log.Warn("event not found", zap.String("id", objID.Hex()))
		http.NotFound(w, r)
		return
	}

	vm := ShowVM{
		BaseVM:       viewdata.NewBaseVM(r, ev.Title, "/events"),
		ID:           ev.ID.Hex(),
		EventTitle:   ev.Title,
		Date:         ev.Date.Format("Monday, Jan 2, 2006 15:04"),
		Location:     ev.Location,
		Description:  template.HTML(ev.Description), // sanitized at write time
		MemberPrice:  ev.MemberPrice,
		RegularPrice: ev.RegularPrice,
		BrochureURL:  ev.BrochureURL,
		Background:   ev.BackgroundURL,
		IsPast:       ev.Date.Before(time.Now()),
	}

	templates.Render(w, r, "event_show", vm)
}

func toRows(events []models.Event) []eventRow {
	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventRow{
			ID:           ev.ID.Hex(),
			Title:        ev.Title,
			Date:         ev.Date.Format("Jan 2, 2006 15:04"),
			Location:     ev.Location,
			MemberPrice:  ev.MemberPrice,
			RegularPrice: ev.RegularPrice,
		})
	}
	return rows
}
