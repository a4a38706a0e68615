package utils

// DedupeStrings drops repeated values, keeping the first occurrence of each
// and the original order.
func DedupeStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := []string{}
	for _, s := range input {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
