// Package pipeline implements the transformation core for quota request
// exports. It takes a single delimited text blob (tab, comma, or whitespace
// separated, as produced by spreadsheet/word/html decoders or a Capacity
// Request Tracker export), normalizes every data line into the canonical
// seven-column record, and partitions the result by request type.
//
// The pipeline is a pure function of its input text: no state survives a
// call, concurrent invocations are safe, and failures are all-or-nothing.
package pipeline

// Delimiter is the field separator detected from the header line and applied
// uniformly to every line of the document.
type Delimiter int

const (
	DelimiterComma Delimiter = iota
	DelimiterTab
	DelimiterWhitespace
)

// String returns a short name for logging and test output.
func (d Delimiter) String() string {
	switch d {
	case DelimiterComma:
		return "comma"
	case DelimiterTab:
		return "tab"
	case DelimiterWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// InputShape is the result of schema classification: either the document
// already uses the canonical column names, or it is a raw ticketing export
// that needs field remapping.
type InputShape int

const (
	ShapeRaw InputShape = iota
	ShapePreNormalized
)

func (s InputShape) String() string {
	switch s {
	case ShapeRaw:
		return "raw"
	case ShapePreNormalized:
		return "pre-normalized"
	default:
		return "unknown"
	}
}

// Row is the canonical record every input shape converges to. All fields are
// strings; absent source values become empty strings except Zone, which
// defaults to "N/A".
type Row struct {
	SubscriptionID string `json:"subscriptionId"`
	RequestType    string `json:"requestType"`
	VMType         string `json:"vmType"`
	Region         string `json:"region"`
	Zone           string `json:"zone"`
	Cores          string `json:"cores"`
	Status         string `json:"status"`

	// OriginalID is a stable per-row identity key. For raw exports it is the
	// RDQuota value (falling back to ID); for pre-normalized input it is a
	// positional placeholder. It is not part of the published column set.
	OriginalID string `json:"originalId"`
}

// Result is the immutable outcome of one transform call. Rows preserves
// source document order; Groups partitions the same rows by request type
// with GroupOrder recording first-encounter order for deterministic output.
type Result struct {
	Shape      InputShape       `json:"-"`
	Delimiter  Delimiter        `json:"-"`
	Rows       []Row            `json:"rows"`
	Groups     map[string][]Row `json:"groups"`
	GroupOrder []string         `json:"groupOrder"`
}
