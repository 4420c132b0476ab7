package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Game pages wrap numbers in Unicode bidi controls and decorate them with
// thousand separators; both must go before parsing.
var bidiReplacer = strings.NewReplacer(
	"‪", "", // LEFT-TO-RIGHT EMBEDDING
	"‫", "", // RIGHT-TO-LEFT EMBEDDING
	"‬", "", // POP DIRECTIONAL FORMATTING
	"‭", "", // LEFT-TO-RIGHT OVERRIDE
	"‮", "", // RIGHT-TO-LEFT OVERRIDE
	"‎", "", // LEFT-TO-RIGHT MARK
	"‏", "", // RIGHT-TO-LEFT MARK
)

// StripBidiControls removes Unicode directionality control characters.
func StripBidiControls(s string) string {
	return bidiReplacer.Replace(s)
}

// ParseGameInt parses an integer as rendered by the game UI: bidi controls,
// thousand separators (dot, comma, spaces) and surrounding whitespace are
// stripped; a leading ASCII or Unicode minus is honored.
func ParseGameInt(raw string) (int, error) {
	s := StripBidiControls(strings.TrimSpace(raw))
	s = strings.NewReplacer(".", "", ",", "", " ", "", " ", "", " ", "").Replace(s)
	s = strings.ReplaceAll(s, "−", "-")
	if s == "" {
		return 0, fmt.Errorf("empty number %q", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q: %w", raw, err)
	}
	return n, nil
}
