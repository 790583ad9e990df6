package pipeline

// groupRows partitions rows by request type (post-rewrite, exact string
// equality). Rows keep their source order within each group, and the
// returned order slice records each key's first encounter so callers can
// iterate deterministically.
func groupRows(rows []Row) (map[string][]Row, []string) {
	groups := make(map[string][]Row)
	order := make([]string, 0)

	for _, r := range rows {
		key := r.RequestType
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	return groups, order
}
