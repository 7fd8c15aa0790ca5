package sanitizer

// NormalizeStringSlice applies the normalizer to each item, dropping empties
// and duplicates while preserving first-seen order.
func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// NormalizeTags sanitizes booking metadata tags.
func NormalizeTags(tags []string) []string {
	return NormalizeStringSlice(tags, SanitizeTag)
}
