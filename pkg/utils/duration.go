package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatHMS renders a duration in seconds as "HH:MM:SS". Hours grow past 99
// rather than wrapping.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseHMS parses a "HH:MM:SS" (or "MM:SS") string into seconds. The string
// may carry Unicode bidi control characters and surrounding whitespace, as
// game pages embed them around numbers.
func ParseHMS(raw string) (int, error) {
	cleaned := StripBidiControls(strings.TrimSpace(raw))
	parts := strings.Split(cleaned, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed duration %q", raw)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("malformed duration %q: %w", raw, err)
		}
		total = total*60 + n
	}
	return total, nil
}
