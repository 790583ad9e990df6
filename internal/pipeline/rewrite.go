package pipeline

import "regexp"

// zoneNA is the placeholder for rows without deployment constraints, and the
// forced Cores value for zonal enablement requests.
const zoneNA = "N/A"

// rawAZEnablement is the ticketing-system request type whose rows never
// carry a meaningful core count.
const rawAZEnablement = "AZ Enablement/Whitelisting"

// requestTypeRewrites maps ticketing-system request types to their display
// vocabulary. Unmapped values pass through unchanged.
var requestTypeRewrites = map[string]string{
	"AZ Enablement/Whitelisting":     "Zonal Enablement",
	"Region Enablement/Whitelisting": "Region Enablement",
	"Whitelisting/Quota Increase":    "Region Enablement & Quota Increase",
	"Quota Increase":                 "Quota Increase",
	"Region Limit Increase":          "Region Limit Increase",
	"RI Enablement/Whitelisting":     "Reserved Instances",
}

// statusRewrites normalizes the status vocabulary in both branches.
var statusRewrites = map[string]string{
	"Verification Successful": "Approved",
	"Abandoned":               "Backlogged",
	"-":                       "Pending Customer Response",
}

// rawStatusRewrites extends statusRewrites with the fulfillment mapping that
// only applies to raw ticketing exports. Pre-normalized input arriving with
// "Fulfillment Actions Completed" keeps it verbatim; the asymmetry is
// deliberate and must not be unified.
var rawStatusRewrites = map[string]string{
	"Fulfillment Actions Completed": "Fulfilled",
	"Verification Successful":       "Approved",
	"Abandoned":                     "Backlogged",
	"-":                             "Pending Customer Response",
}

// rewriteRequestType applies the request-type table; identity for unmapped
// values.
func rewriteRequestType(s string) string {
	if mapped, ok := requestTypeRewrites[s]; ok {
		return mapped
	}
	return s
}

// rewriteStatus applies the shared status table (pre-normalized branch).
func rewriteStatus(s string) string {
	if mapped, ok := statusRewrites[s]; ok {
		return mapped
	}
	return s
}

// rewriteRawStatus applies the raw-branch status table.
func rewriteRawStatus(s string) string {
	if mapped, ok := rawStatusRewrites[s]; ok {
		return mapped
	}
	return s
}

// regionAbbrev matches a trailing parenthesized all-caps abbreviation such
// as the " (SB)" in "Brazil South (SB)".
var regionAbbrev = regexp.MustCompile(` \([A-Z]+\)`)

// CleanRegion strips the region's abbreviation suffix. The operation is
// idempotent: already-clean names come back unchanged.
func CleanRegion(s string) string {
	return regionAbbrev.ReplaceAllString(s, "")
}
