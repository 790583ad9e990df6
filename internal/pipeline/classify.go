package pipeline

import (
	"strings"

	"github.com/capops/quotanorm/internal/schema"
)

// Classify decides which transform branch handles the document. Input whose
// header already carries every canonical column name is pre-normalized;
// anything else is treated as a raw ticketing export.
func Classify(idx HeaderIndex) InputShape {
	if idx.HasAll(schema.FinalHeaders()) {
		return ShapePreNormalized
	}
	return ShapeRaw
}

// validateRawHeader checks that a raw export header carries an identifier
// column (one of the ID/RDQuota aliases) and all seven required source
// columns. The first missing column is reported by name.
func validateRawHeader(idx HeaderIndex) error {
	hasIdentifier := false
	for _, alias := range schema.IdentifierAliases() {
		if idx.Has(alias) {
			hasIdentifier = true
			break
		}
	}
	if !hasIdentifier {
		return &MissingColumnError{Column: strings.Join(schema.IdentifierAliases(), " or ")}
	}

	for _, col := range schema.RequiredRawColumns() {
		if !idx.Has(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}
