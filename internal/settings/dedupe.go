package settings

// DedupeStrings flattens the given lists into one list containing each
// distinct string exactly once, in first-seen order across all inputs.
// Equality is exact string equality; no normalization is applied.
func DedupeStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, list := range lists {
		for _, item := range list {
			if !seen[item] {
				seen[item] = true
				result = append(result, item)
			}
		}
	}

	return result
}
