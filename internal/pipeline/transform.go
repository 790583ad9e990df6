package pipeline

import (
	"fmt"
	"strings"

	"github.com/capops/quotanorm/internal/schema"
)

// Transform runs the whole pipeline over one export blob: banner strip,
// delimiter detection, header indexing, schema classification, per-row
// normalization, empty-row filtering, and grouping by request type.
//
// The call is referentially transparent. On any failure it returns a nil
// result and a single descriptive error; partial output is never produced.
func Transform(text string) (*Result, error) {
	lines := nonBlankLines(StripBanner(text))
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	if len(lines) < 2 {
		return nil, ErrMissingHeaderRow
	}

	delim := Detect(lines[0])
	idx := NewHeaderIndex(delim.Split(lines[0]))
	shape := Classify(idx)

	var rows []Row
	switch shape {
	case ShapePreNormalized:
		rows = transformPreNormalized(lines[1:], delim, idx)
	default:
		if err := validateRawHeader(idx); err != nil {
			return nil, err
		}
		rows = filterRows(transformRaw(lines[1:], delim, idx))
	}

	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}

	groups, order := groupRows(rows)
	return &Result{
		Shape:      shape,
		Delimiter:  delim,
		Rows:       rows,
		Groups:     groups,
		GroupOrder: order,
	}, nil
}

// nonBlankLines splits the blob into lines, dropping carriage returns and
// lines that are empty after trimming. Line 0 of the result is the header.
func nonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// transformPreNormalized handles documents whose columns already use the
// canonical names. Fields are read directly by name; Region is cleaned and
// Status passes through the shared rewrite table. No source identifier is
// assumed, so OriginalID is a positional placeholder.
func transformPreNormalized(dataLines []string, delim Delimiter, idx HeaderIndex) []Row {
	rows := make([]Row, 0, len(dataLines))
	for i, line := range dataLines {
		fields := delim.Split(line)

		zone := idx.Field(fields, schema.ColZone)
		if zone == "" {
			zone = zoneNA
		}

		rows = append(rows, Row{
			SubscriptionID: idx.Field(fields, schema.ColSubscriptionID),
			RequestType:    idx.Field(fields, schema.ColRequestType),
			VMType:         idx.Field(fields, schema.ColVMType),
			Region:         CleanRegion(idx.Field(fields, schema.ColRegion)),
			Zone:           zone,
			Cores:          idx.Field(fields, schema.ColCores),
			Status:         rewriteStatus(idx.Field(fields, schema.ColStatus)),
			OriginalID:     fmt.Sprintf("row-%d", i+1),
		})
	}
	return rows
}

// transformRaw remaps ticketing-export columns onto the canonical record:
// UTC Ticket becomes the request type, Event ID the core count, Deployment
// Constraints the zone, Reason the status, and SKU the VM type. Row identity
// comes from RDQuota when present and non-empty, else ID.
func transformRaw(dataLines []string, delim Delimiter, idx HeaderIndex) []Row {
	rows := make([]Row, 0, len(dataLines))
	for _, line := range dataLines {
		fields := delim.Split(line)

		rawType := idx.Field(fields, schema.RawColTicket)

		cores := idx.Field(fields, schema.RawColEventID)
		switch {
		case rawType == rawAZEnablement:
			// Zonal enablement requests never carry a core count; the
			// override wins even over the -1 sentinel.
			cores = zoneNA
		case cores == "-1":
			cores = ""
		}

		zone := idx.Field(fields, schema.RawColConstraints)
		if zone == "" {
			zone = zoneNA
		}

		id := idx.Field(fields, schema.RawColRDQuota)
		if id == "" {
			id = idx.Field(fields, schema.RawColID)
		}

		rows = append(rows, Row{
			SubscriptionID: idx.Field(fields, schema.ColSubscriptionID),
			RequestType:    rewriteRequestType(rawType),
			VMType:         idx.Field(fields, schema.RawColSKU),
			Region:         CleanRegion(idx.Field(fields, schema.ColRegion)),
			Zone:           zone,
			Cores:          cores,
			Status:         rewriteRawStatus(idx.Field(fields, schema.RawColReason)),
			OriginalID:     id,
		})
	}
	return rows
}
