package data

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeLabel removes one leading icon token and the space after it,
// e.g. "🏔️ Adventure & Outdoor" becomes "Adventure & Outdoor". Labels that
// do not start with an icon are returned trimmed.
func NormalizeLabel(label string) string {
	s := strings.TrimSpace(label)
	head, rest, ok := strings.Cut(s, " ")
	if !ok || !isIcon(head) {
		return s
	}
	return strings.TrimSpace(rest)
}

func NormalizeLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	res := make([]string, 0, len(labels))
	for _, l := range labels {
		if n := NormalizeLabel(l); n != "" {
			res = append(res, n)
		}
	}
	return res
}

// isIcon reports whether token is made only of pictographic runes and the
// joiners, selectors and regional indicators that compose them.
func isIcon(token string) bool {
	if token == "" {
		return false
	}
	pictographic := false
	for len(token) > 0 {
		r, size := utf8.DecodeRuneInString(token)
		token = token[size:]
		switch {
		case r == 0x200D, r == 0xFE0F, r == 0xFE0E, r == 0x20E3:
			// zero width joiner, variation selectors, keycap
		case r >= 0x1F3FB && r <= 0x1F3FF:
			// skin tone modifiers
		case r >= 0xE0020 && r <= 0xE007F:
			// tag sequences
		case r >= 0x1F1E6 && r <= 0x1F1FF:
			pictographic = true // regional indicators (flags)
		case r >= 0x1F000 && r <= 0x1FAFF, r >= 0x2600 && r <= 0x27BF, r >= 0x2300 && r <= 0x23FF,
			r >= 0x2B00 && r <= 0x2BFF, r == 0x00A9, r == 0x00AE, r >= 0x2100 && r <= 0x214F:
			pictographic = true
		case unicode.Is(unicode.So, r):
			pictographic = true
		default:
			return false
		}
	}
	return pictographic
}
