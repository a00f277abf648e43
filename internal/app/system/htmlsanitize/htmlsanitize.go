// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from admin-entered rich text
// (event descriptions, image captions) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and other unsafe markup
// removed. Safe formatting tags (p, strong, em, a, ul, li, ...) survive.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
