package eventstore

import (
	"testing"
	"time"

	"github.com/mkovarik/kulturhub/internal/domain/models"
)

func ev(title string, date time.Time) models.Event {
	return models.Event{Title: title, Date: date}
}

func TestPartition_TotalAndDisjoint(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("past concert", now.Add(-48*time.Hour)),
		ev("tonight", now),
		ev("next week", now.Add(7*24*time.Hour)),
		ev("last year", now.AddDate(-1, 0, 0)),
	}

	upcoming, past := Partition(events, now)

	if len(upcoming)+len(past) != len(events) {
		t.Fatalf("partition not total: %d + %d != %d", len(upcoming), len(past), len(events))
	}
	for _, e := range upcoming {
		if e.Date.Before(now) {
			t.Errorf("upcoming contains past event %q", e.Title)
		}
	}
	for _, e := range past {
		if !e.Date.Before(now) {
			t.Errorf("past contains upcoming event %q", e.Title)
		}
	}
}

func TestPartition_BoundaryIsUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	upcoming, past := Partition([]models.Event{ev("tonight", now)}, now)

	if len(upcoming) != 1 || len(past) != 0 {
		t.Errorf("event at exactly now must be upcoming: upcoming=%d past=%d", len(upcoming), len(past))
	}
}

func TestPartition_Empty(t *testing.T) {
	upcoming, past := Partition(nil, time.Now())
	if len(upcoming) != 0 || len(past) != 0 {
		t.Error("expected empty partition")
	}
}

func TestNextUpcoming_TakesThreeAscending(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		ev("old", now.Add(-time.Hour)),
		ev("first", now.Add(24*time.Hour)),
		ev("second", now.Add(48*time.Hour)),
		ev("third", now.Add(72*time.Hour)),
		ev("fourth", now.Add(96*time.Hour)),
	}

	next := NextUpcoming(events, now, 3)
	if len(next) != 3 {
		t.Fatalf("got %d events, want 3", len(next))
	}
	if next[0].Title != "first" || next[1].Title != "second" || next[2].Title != "third" {
		t.Errorf("unexpected order: %v", []string{next[0].Title, next[1].Title, next[2].Title})
	}
}

func TestNextUpcoming_FewerThanN(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	events := []models.Event{ev("only", now.Add(time.Hour))}

	next := NextUpcoming(events, now, 3)
	if len(next) != 1 {
		t.Fatalf("got %d events, want 1", len(next))
	}
}
