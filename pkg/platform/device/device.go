// Package device summarizes User-Agent strings for submission provenance.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// Summarize extracts a human-readable channel summary from a User-Agent
// string. Returns format: "Browser on OS" (e.g., "Chrome on macOS",
// "Safari on iOS"). Used to annotate public submissions; never part of
// identity resolution.
func Summarize(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)

	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		platform := ua.Platform()
		if platform != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}

	return strings.TrimSpace(browser + " on " + os)
}
