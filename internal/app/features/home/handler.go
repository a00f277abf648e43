// internal/app/features/home/handler.go
package home

import (
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	eventstore "github.com/mkovarik/kulturhub/internal/app/store/events"
	"github.com/mkovarik/kulturhub/internal/app/system/timeouts"
	"github.com/mkovarik/kulturhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// upcomingCount is how many events the home page shows.
const upcomingCount = 3

// Handler serves the public landing page.
type Handler struct {
	Events *eventstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a home Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events: eventstore.New(db),
		Log:    logger,
	}
}

type eventCard struct {
	ID       string
	Title    string
	Date     string
	Location string
	Teaser   template.HTML
}

type homeVM struct {
	viewdata.BaseVM
	Upcoming []eventCard
}

// Serve renders the landing page with the next few upcoming events.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "home events list")
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		// The landing page should stay up even if the event list fails.
		h.Log.Error("home: failed to load events", zap.Error(err))
		events = nil
	}

	next := eventstore.NextUpcoming(events, time.Now(), upcomingCount)
	cards := make([]eventCard, 0, len(next))
	for _, ev := range next {
		cards = append(cards, eventCard{
			ID:       ev.ID.Hex(),
			Title:    ev.Title,
			Date:     ev.Date.Format("Monday, Jan 2, 2006 15:04"),
			Location: ev.Location,
			Teaser:   template.HTML(ev.Description),
		})
	}

	data := homeVM{
		BaseVM:   viewdata.NewBaseVM(r, "", "/"),
		Upcoming: cards,
	}

	templates.Render(w, r, "home", data)
}
