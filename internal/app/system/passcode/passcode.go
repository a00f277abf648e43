// internal/app/system/passcode/passcode.go

// Package passcode generates attendee access codes. Codes gate nothing more
// sensitive than an attendee's own QR page, so math/rand is deliberate; do
// not reach for this package where real secrets are needed.
package passcode

import (
	"math/rand"
	"sync"
	"time"
)

// Length of a generated access code.
const Length = 8

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	mu  sync.Mutex
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// New returns an 8-character pseudo-random base-36 access code.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
