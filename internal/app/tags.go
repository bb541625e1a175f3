package app

import "strings"

// maxTags caps the tag set size on plans and thoughts.
const maxTags = 10

// normalizeTags lowercases, trims, and deduplicates a tag array,
// preserving first-seen order. Empty entries are dropped. Returns a
// ValidationError when the normalized set exceeds maxTags.
func normalizeTags(tags []string) ([]string, error) {
	out := []string{}
	seen := map[string]bool{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}

	if len(out) > maxTags {
		return nil, validationErr("A maximum of 10 tags is allowed")
	}
	return out, nil
}
