// internal/app/system/checkin/checkin.go

// Package checkin decodes scanned QR payloads for event check-in.
//
// A payload is "<name> - <eventID>". Names may themselves contain " - ", so
// the split happens at the LAST separator: the trailing segment is always
// the event id the QR was issued for.
package checkin

import (
	"errors"
	"strings"
)

// Separator between the attendee name and the event id in a QR payload.
const Separator = " - "

var (
	// ErrBadFormat means the payload is missing the separator, the name,
	// or the event id.
	ErrBadFormat = errors.New("scan payload is not \"<name> - <event>\"")

	// ErrEventMismatch means the payload was issued for a different event
	// than the one selected on the scanner. No cross-event lookup is done.
	ErrEventMismatch = errors.New("scan payload belongs to a different event")
)

// Payload encodes name and event id the way the QR images are generated.
func Payload(name, eventID string) string {
	return name + Separator + eventID
}

// Parse splits a scanned payload into attendee name and event id.
func Parse(payload string) (name, eventID string, err error) {
	i := strings.LastIndex(payload, Separator)
	if i < 0 {
		return "", "", ErrBadFormat
	}
	name = payload[:i]
	eventID = payload[i+len(Separator):]
	if name == "" || eventID == "" {
		return "", "", ErrBadFormat
	}
	return name, eventID, nil
}

// Resolve parses payload and verifies it was issued for selectedEventID.
// On success it returns the attendee name to look up in the selected
// event's registrations (exact, case-sensitive match).
func Resolve(payload, selectedEventID string) (name string, err error) {
	name, eventID, err := Parse(payload)
	if err != nil {
		return "", err
	}
	if eventID != selectedEventID {
		return "", ErrEventMismatch
	}
	return name, nil
}
