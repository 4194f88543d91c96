// Package mask hides personal data before it reaches the logs.
package mask

import (
	"regexp"
	"strings"
)

// Email keeps the first two characters of the local part and the whole
// domain:
//
//	vishal@example.com → vi***@example.com
//	ab@example.com     → **@example.com
//	not-an-email       → N/A
func Email(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "N/A"
	}

	runes := []rune(local)
	if len(runes) <= 2 {
		return "**@" + domain
	}

	return string(runes[:2]) + "***@" + domain
}

// emailField matches a JSON "email":"..." pair, tolerating whitespace
// around the colon.
var emailField = regexp.MustCompile(`("email"\s*:\s*")([^"]+)(")`)

// JSONEmail replaces the value of every "email" field in a JSON payload
// with ***masked***. The payload does not need to be valid JSON; it is
// often truncated.
func JSONEmail(payload string) string {
	return emailField.ReplaceAllString(payload, "${1}***masked***${3}")
}
