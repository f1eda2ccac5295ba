package str

import "strings"

// SeenBool reports whether a stored "Seen?" cell counts as seen.
// Files edited by hand contain variants like "yes", "Yes " or "YES".
func SeenBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// ShortText truncates free text to 45 characters if necessary.
func ShortText(s string) string {
	if len(s) < 45 {
		return s
	}
	return s[0:41] + "..."
}
