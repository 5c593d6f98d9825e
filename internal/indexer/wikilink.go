package indexer

import (
	"regexp"
	"strings"
)

var wikilinkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ExtractWikilinks returns the candidate entity names referenced by [[...]]
// markers in text, in order of appearance, duplicates preserved.
// Pipe syntax ("[[Kaela|the ranger]]") keeps only the target before the pipe,
// and path-style targets ("[[npcs/allies/Kaela]]") keep only the final segment.
func ExtractWikilinks(text string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	links := make([]string, 0, len(matches))
	for _, m := range matches {
		candidate := strings.TrimSpace(m[1])
		if pipe := strings.Index(candidate, "|"); pipe >= 0 {
			candidate = strings.TrimSpace(candidate[:pipe])
		}
		if slash := strings.LastIndex(candidate, "/"); slash >= 0 {
			candidate = strings.TrimSpace(candidate[slash+1:])
		}
		links = append(links, candidate)
	}
	return links
}
