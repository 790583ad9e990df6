package pipeline

import "strings"

// The Capacity Request Tracker prepends a banner line to its exports, e.g.
//
//	Exported from Capacity Request Tracker - Generated 2024-03-08 14:02 UTC
//
// All four markers must match before the line is dropped, so a legitimate
// data line that merely resembles the banner passes through untouched.
const bannerPrefix = "Exported from"

var bannerMarkers = []string{
	"Capacity Request Tracker",
	"Generated",
	"UTC",
}

// StripBanner removes the tracker banner from line 0 when present. Input
// that does not carry the banner is returned unchanged; there is no error
// path.
func StripBanner(text string) string {
	first, rest, found := strings.Cut(text, "\n")

	line := strings.TrimSpace(first)
	if !strings.HasPrefix(line, bannerPrefix) {
		return text
	}
	for _, marker := range bannerMarkers {
		if !strings.Contains(line, marker) {
			return text
		}
	}

	if !found {
		return ""
	}
	return rest
}
