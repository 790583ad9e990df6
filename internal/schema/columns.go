// Package schema declares the column vocabulary for quota request exports:
// the canonical seven-column output schema and the raw ticketing-export
// column names it is derived from.
package schema

// Canonical output columns. Every transform converges to exactly this set.
const (
	ColSubscriptionID = "Subscription ID"
	ColRequestType    = "Request Type"
	ColVMType         = "VM Type"
	ColRegion         = "Region"
	ColZone           = "Zone"
	ColCores          = "Cores"
	ColStatus         = "Status"
)

// Raw ticketing-export columns (Capacity Request Tracker).
const (
	RawColTicket      = "UTC Ticket"
	RawColConstraints = "Deployment Constraints"
	RawColEventID     = "Event ID"
	RawColReason      = "Reason"
	RawColSKU         = "SKU"
)

// Identifier columns for the raw shape. RDQuota is preferred when present
// and non-empty; ID is the fallback.
const (
	RawColRDQuota = "RDQuota"
	RawColID      = "ID"
)

// FinalHeaders returns the published export header list, in order.
// Callers get a fresh slice; the canonical order never changes.
func FinalHeaders() []string {
	return []string{
		ColSubscriptionID,
		ColRequestType,
		ColVMType,
		ColRegion,
		ColZone,
		ColCores,
		ColStatus,
	}
}

// RequiredRawColumns returns the source columns a raw ticketing export must
// carry before transformation is attempted. Subscription ID and Region are
// shared with the canonical schema; the rest are ticketing-system names.
func RequiredRawColumns() []string {
	return []string{
		RawColTicket,
		RawColConstraints,
		RawColEventID,
		RawColReason,
		ColSubscriptionID,
		RawColSKU,
		ColRegion,
	}
}

// IdentifierAliases returns the column names that can supply a per-row
// identifier in the raw shape. At least one must be present in the header.
func IdentifierAliases() []string {
	return []string{RawColID, RawColRDQuota}
}
