package retrieval

// AssembleContext selects the context budget from ranked candidates. A
// (document title, heading) pair contributes at most one block; later
// duplicates are near-identical overlapping windows of the same section and
// add no information. Order is preserved and the result is capped at
// maxChunks.
func AssembleContext(candidates []Candidate, maxChunks int) []Candidate {
	type sectionKey struct {
		docTitle string
		heading  string
	}

	seen := make(map[sectionKey]struct{})
	var selected []Candidate
	for _, candidate := range candidates {
		if maxChunks > 0 && len(selected) >= maxChunks {
			break
		}
		key := sectionKey{docTitle: candidate.DocTitle, heading: candidate.Heading}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		selected = append(selected, candidate)
	}

	return selected
}
