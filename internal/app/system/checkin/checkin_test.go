package checkin

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		payload   string
		wantName  string
		wantEvent string
		wantErr   error
	}{
		{"Jane Doe - EVT123", "Jane Doe", "EVT123", nil},
		{"Jean-Luc Picard - EVT123", "Jean-Luc Picard", "EVT123", nil},
		// Name containing the separator splits at the last occurrence.
		{"Duo A - B - EVT123", "Duo A - B", "EVT123", nil},

		{"Jane Doe", "", "", ErrBadFormat},
		{" - EVT123", "", "", ErrBadFormat},
		{"Jane Doe - ", "", "", ErrBadFormat},
		{"", "", "", ErrBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			name, event, err := Parse(tt.payload)
			if !errors.Is(err, tt.wantErr) && err != tt.wantErr {
				t.Fatalf("Parse(%q) err = %v, want %v", tt.payload, err, tt.wantErr)
			}
			if name != tt.wantName || event != tt.wantEvent {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tt.payload, name, event, tt.wantName, tt.wantEvent)
			}
		})
	}
}

func TestResolve_SelectedEvent(t *testing.T) {
	name, err := Resolve("Jane Doe - EVT123", "EVT123")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "Jane Doe" {
		t.Errorf("name: got %q, want %q", name, "Jane Doe")
	}
}

func TestResolve_Mismatch(t *testing.T) {
	// Mismatch wins regardless of whether the name would match anything.
	_, err := Resolve("Jane Doe - EVT123", "EVT999")
	if !errors.Is(err, ErrEventMismatch) {
		t.Fatalf("expected ErrEventMismatch, got %v", err)
	}
}

func TestResolve_BadFormat(t *testing.T) {
	_, err := Resolve("garbage", "EVT123")
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	p := Payload("Jane Doe", "EVT123")
	name, event, err := Parse(p)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if name != "Jane Doe" || event != "EVT123" {
		t.Errorf("round trip: got (%q, %q)", name, event)
	}
}
