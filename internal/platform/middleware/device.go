package middleware

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientLabel extracts a coarse, low-cardinality device label from a
// User-Agent string for request logs, e.g. "chrome on mac os x" or
// "safari on ios (mobile)". It deliberately discards versions and never
// returns raw User-Agent content.
func ClientLabel(userAgentString string) string {
	if userAgentString == "" {
		return "unknown"
	}

	ua := useragent.New(userAgentString)
	if ua.Bot() {
		return "bot"
	}

	browser, _ := ua.Browser()
	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}

	os := strings.ToLower(strings.TrimSpace(ua.OS()))
	if os == "" {
		os = "unknown"
	}

	label := browser + " on " + os
	if ua.Mobile() {
		label += " (mobile)"
	}
	return label
}
