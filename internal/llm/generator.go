package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks lorekeeper/internal/llm Generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"lorekeeper/internal/service"
)

// Generator turns a prompt into a completion. Implementations own their
// transport client and credential validation; the variant is selected by
// configuration at startup.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// OllamaProvider generates completions against a local Ollama server.
type OllamaProvider struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewOllamaProvider creates a provider for a local Ollama server.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		client:  http.DefaultClient,
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate sends a non-streaming generate request. The caller bounds the call
// with a context deadline; deadline expiry surfaces as ErrUpstreamTimeout.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/api/generate", p.BaseURL)

	payload := ollamaGenerateRequest{
		Model:  p.Model,
		Prompt: prompt,
		Stream: false,
	}
	if maxTokens > 0 {
		payload.Options = map[string]any{"num_predict": maxTokens}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: bad status %d: %s", service.ErrUpstream, resp.StatusCode, string(raw))
	}

	var generateResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generateResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	answer := strings.TrimSpace(generateResp.Response)
	if answer == "" {
		return "", fmt.Errorf("empty completion returned")
	}
	return answer, nil
}

// GeminiProvider generates completions against the hosted Gemini API.
type GeminiProvider struct {
	Model  string
	client *genai.Client
}

// NewGeminiProvider creates a provider for the Gemini API.
// The API key is required and validated at construction, not first use.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		Model:  model,
		client: client,
	}, nil
}

// Generate requests a completion with a low temperature, suited to
// lore-accurate answers grounded in supplied context.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.1),
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("empty completion returned")
	}
	return answer, nil
}

// classifyTransportError distinguishes deadline expiry from other transport
// failures so handlers can map them to different status codes.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", service.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", service.ErrUpstream, err)
}
