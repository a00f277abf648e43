package eventstore

import (
	"time"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

// Partition splits events into upcoming (date >= now) and past (date < now).
// The split is total and disjoint: every event lands in exactly one slice.
// Input order is preserved, so a date-ascending list stays date-ascending.
func Partition(events []models.Event, now time.Time) (upcoming, past []models.Event) {
	for _, e := range events {
		if e.Date.Before(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}

// NextUpcoming returns up to n upcoming events ascending by date.
// events must already be sorted ascending (as Store.List returns them).
func NextUpcoming(events []models.Event, now time.Time, n int) []models.Event {
	upcoming, _ := Partition(events, now)
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}
