package pipeline

import "strings"

// Detect chooses the field separator for the whole document by inspecting
// the header line only. Tabs win when they strictly outnumber commas;
// otherwise any comma selects comma splitting; a header with neither falls
// back to whitespace-run splitting.
func Detect(header string) Delimiter {
	tabs := strings.Count(header, "\t")
	commas := strings.Count(header, ",")

	switch {
	case tabs > commas && tabs > 0:
		return DelimiterTab
	case commas > 0:
		return DelimiterComma
	default:
		return DelimiterWhitespace
	}
}

// Split divides a line into cleaned fields using the detected delimiter.
// Every field has literal double quotes removed (not unescaped) and
// surrounding whitespace trimmed.
func (d Delimiter) Split(line string) []string {
	var parts []string
	switch d {
	case DelimiterTab:
		parts = strings.Split(line, "\t")
	case DelimiterComma:
		parts = strings.Split(line, ",")
	default:
		// strings.Fields treats any run of whitespace as one separator,
		// which is exactly the WhitespaceRun contract.
		parts = strings.Fields(line)
	}

	for i, p := range parts {
		parts[i] = cleanField(p)
	}
	return parts
}

// cleanField strips all double-quote characters, then trims whitespace.
// Quote removal comes first so `" value "` trims down to `value`.
func cleanField(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}
