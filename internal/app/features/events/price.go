// internal/app/features/events/price.go
package events

import (
	"strconv"
	"strings"
)

// parsePrice accepts an empty field as zero and tolerates a comma decimal
// separator, which is what most of our admins type.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
