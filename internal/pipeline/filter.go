package pipeline

// isEffectivelyEmpty reports whether a row carried no real payload: the zone
// fell back to its placeholder and the four identifying fields are all
// blank. The column set is a deliberate heuristic for the raw ticketing
// export and is checked exactly as-is, not generalized to every field.
func isEffectivelyEmpty(r Row) bool {
	return r.Zone == zoneNA &&
		r.SubscriptionID == "" &&
		r.VMType == "" &&
		r.Region == "" &&
		r.RequestType == ""
}

// filterRows drops effectively-empty rows. Only raw-branch output is ever
// filtered; pre-normalized rows are always kept.
func filterRows(rows []Row) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if isEffectivelyEmpty(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
