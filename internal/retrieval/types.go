package retrieval

// Candidate is one retrieved chunk, normalized from a search hit plus the
// authoritative catalog record.
type Candidate struct {
	ChunkID     string
	Text        string
	Heading     string
	DocTitle    string
	DocPath     string
	DocType     string
	SessionNo   *int
	SessionDate string
	Score       float64
	Entities    []string
}

// ContextBlock is one entry in the assembled context handed to the prompt.
type ContextBlock struct {
	DocTitle  string `json:"doc_title"`
	DocType   string `json:"doc_type"`
	Heading   string `json:"heading,omitempty"`
	SessionNo *int   `json:"session_no,omitempty"`
	Text      string `json:"text"`
}

// Source is a citation pointer returned alongside the answer.
type Source struct {
	DocTitle  string `json:"doc_title"`
	SessionNo *int   `json:"session_no,omitempty"`
	Heading   string `json:"heading,omitempty"`
	Path      string `json:"path,omitempty"`
	ChunkID   string `json:"chunk_id"`
}

// AskRequest is a validated question with optional session-range filters.
type AskRequest struct {
	Query       string
	K           int
	FromSession *int
	ToSession   *int
}

// AskResponse carries the generated answer with its supporting material.
type AskResponse struct {
	Answer  string         `json:"answer"`
	Sources []Source       `json:"sources"`
	Context []ContextBlock `json:"context"`
}
