package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lorekeeper/internal/contextutil"
	"lorekeeper/internal/llm"
	"lorekeeper/internal/service"
)

// Engine answers questions over the indexed corpus: search, optional rerank,
// context assembly, prompt construction, generation. Engines hold no mutable
// state, so one instance serves concurrent requests.
type Engine struct {
	coordinator     *Coordinator
	scorer          Scorer // nil disables reranking
	generator       llm.Generator
	maxChunks       int
	maxAnswerTokens int
	generateTimeout time.Duration
}

// NewEngine creates an ask engine. A nil scorer disables the rerank stage.
func NewEngine(
	coordinator *Coordinator,
	scorer Scorer,
	generator llm.Generator,
	maxChunks int,
	maxAnswerTokens int,
	generateTimeout time.Duration,
) *Engine {
	return &Engine{
		coordinator:     coordinator,
		scorer:          scorer,
		generator:       generator,
		maxChunks:       maxChunks,
		maxAnswerTokens: maxAnswerTokens,
		generateTimeout: generateTimeout,
	}
}

// Ask answers a single question. The request must carry a non-empty query and
// a positive k. An empty result set short-circuits without calling the
// generator; there is nothing to ground an answer in.
func (e *Engine) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Query) == "" {
		return nil, service.WrapError(service.ErrInvalidInput, "query must not be empty")
	}
	if req.K <= 0 {
		return nil, service.WrapError(service.ErrInvalidInput, "k must be positive")
	}
	if req.FromSession != nil && req.ToSession != nil && *req.FromSession > *req.ToSession {
		return nil, service.WrapError(service.ErrInvalidInput, "from_session must not exceed to_session")
	}

	candidates, err := e.coordinator.Search(ctx, req.Query, req.K, req.FromSession, req.ToSession)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrUnavailable, err)
	}

	if len(candidates) == 0 {
		return &AskResponse{
			Answer:  "I could not find anything in the campaign notes that matches this question.",
			Sources: []Source{},
			Context: []ContextBlock{},
		}, nil
	}

	candidates, err = MaybeRerank(ctx, e.scorer, req.Query, candidates, e.maxChunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrUpstream, err)
	}

	blocks := AssembleContext(candidates, e.maxChunks)
	prompt := BuildPrompt(req.Query, blocks)

	genCtx, cancel := context.WithTimeout(ctx, e.generateTimeout)
	defer cancel()

	answer, err := e.generator.Generate(genCtx, prompt, e.maxAnswerTokens)
	if err != nil {
		return nil, service.WrapError(err, "generation failed")
	}

	logger.Debug("answered question",
		"candidates", len(candidates),
		"context_blocks", len(blocks),
	)

	response := &AskResponse{
		Answer:  answer,
		Sources: make([]Source, len(blocks)),
		Context: make([]ContextBlock, len(blocks)),
	}
	for i, block := range blocks {
		response.Sources[i] = Source{
			DocTitle:  block.DocTitle,
			SessionNo: block.SessionNo,
			Heading:   block.Heading,
			Path:      block.DocPath,
			ChunkID:   block.ChunkID,
		}
		response.Context[i] = ContextBlock{
			DocTitle:  block.DocTitle,
			DocType:   block.DocType,
			Heading:   block.Heading,
			SessionNo: block.SessionNo,
			Text:      block.Text,
		}
	}

	return response, nil
}
