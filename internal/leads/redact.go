package leads

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
)

// ScrubPII replaces emails with [EMAIL] and phone numbers with [PHONE].
// Used on free text that may echo submitter data back into logs.
func ScrubPII(text string) string {
	text = emailRe.ReplaceAllString(text, "[EMAIL]")
	return scrubPhones(text)
}

// scrubPhones skips digit runs glued to identifiers, such as lead ids,
// UUIDs and URL path segments.
func scrubPhones(text string) string {
	matches := phoneRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && partOfToken(text[start-1], true) {
			continue
		}
		if end < len(text) && partOfToken(text[end], false) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString("[PHONE]")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func partOfToken(c byte, before bool) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c == '_' || c == '-':
		return true
	case before && c == '/':
		return true
	}
	return false
}
