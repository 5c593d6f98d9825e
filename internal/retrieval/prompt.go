package retrieval

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lorekeeper/internal/storage"
)

const systemInstruction = `You are a lore-accurate RPG archivist. Use ONLY the provided context.
Cite like [Session <sessionNo> §<heading>] for session notes or [<Kind> <title>] for dossiers after claims.
If the context is insufficient, say so and ask a follow-up question.`

const noHeadingLabel = "(no heading)"

var titleCaser = cases.Title(language.English)

// BuildPrompt renders the context blocks and question into a deterministic
// prompt. Each block is labeled with its citation handle so the generator can
// cite without guessing.
func BuildPrompt(query string, blocks []Candidate) string {
	var parts []string
	parts = append(parts, "[System]\n"+systemInstruction)
	parts = append(parts, "[Context]")

	for _, block := range blocks {
		heading := block.Heading
		if heading == "" {
			heading = noHeadingLabel
		}
		parts = append(parts, fmt.Sprintf("--- %s · %s\n%s",
			citationLabel(block), heading, strings.TrimSpace(block.Text)))
	}

	parts = append(parts, "[User Question]\n"+strings.TrimSpace(query))
	return strings.Join(parts, "\n\n")
}

// citationLabel returns the citation handle for a block: the session number
// for session notes, otherwise the capitalized kind and document title.
func citationLabel(block Candidate) string {
	if block.DocType == storage.DocTypeSession && block.SessionNo != nil {
		return fmt.Sprintf("Session %d", *block.SessionNo)
	}
	if block.DocType == storage.DocTypeSession {
		return block.DocTitle
	}
	return fmt.Sprintf("%s %s", titleCaser.String(block.DocType), block.DocTitle)
}
