package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Generator provider names accepted in GENERATOR_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config holds all configuration for the application.
type Config struct {
	// Corpus directories. Sessions is required; the entity directories are
	// optional and treated as empty when absent.
	SessionsDir      string
	CharactersDir    string
	LocationsDir     string
	OrganizationsDir string

	// Chunking parameters.
	ChunkMaxChars int
	ChunkOverlap  int

	// Retrieval parameters.
	MaxContextChunks int
	HybridAlpha      float64

	// Embedding service (OpenAI-compatible /v1/embeddings).
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string

	// Optional reranker (OpenAI-compatible /v1/rerank). Disabled by default.
	EnableReranker   bool
	RerankerBaseURL  string
	RerankerModel    string

	// Generation provider.
	GeneratorProvider string
	OllamaBaseURL     string
	OllamaModel       string
	GeminiAPIKey      string
	GeminiModel       string
	GenerateTimeout   time.Duration
	MaxAnswerTokens   int

	// Search collaborator.
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// Catalog database.
	DBPath string

	// Service.
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically. Environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env at the project root (where go.mod lives).
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		SessionsDir:        getEnv("NOTES_SESSIONS_DIR", ""),
		CharactersDir:      getEnv("NOTES_CHARACTERS_DIR", ""),
		LocationsDir:       getEnv("NOTES_LOCATIONS_DIR", ""),
		OrganizationsDir:   getEnv("NOTES_ORGANIZATIONS_DIR", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "bge-small-en-v1.5"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),
		RerankerBaseURL:    getEnv("RERANKER_BASE_URL", "http://localhost:8082"),
		RerankerModel:      getEnv("RERANKER_MODEL_NAME", "bge-reranker-base"),
		GeneratorProvider:  strings.ToLower(getEnv("GENERATOR_PROVIDER", ProviderOllama)),
		OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL_NAME", "llama3.1:8b"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL_NAME", "gemini-2.0-flash"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "campaign_chunks"),
		DBPath:             getEnv("DB_PATH", "./data/lorekeeper.db"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	cfg.EnableReranker = strings.EqualFold(getEnv("ENABLE_RERANKER", "false"), "true")

	var parseErr error
	cfg.ChunkMaxChars = getEnvInt("CHUNK_MAX_CHARS", 2000, &parseErr)
	cfg.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", 200, &parseErr)
	cfg.MaxContextChunks = getEnvInt("MAX_CONTEXT_CHUNKS", 8, &parseErr)
	cfg.MaxAnswerTokens = getEnvInt("MAX_ANSWER_TOKENS", 400, &parseErr)
	if parseErr != nil {
		return nil, parseErr
	}

	alphaStr := getEnv("HYBRID_ALPHA", "0.5")
	alpha, err := strconv.ParseFloat(alphaStr, 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("HYBRID_ALPHA must be a number in [0,1], got %q", alphaStr)
	}
	cfg.HybridAlpha = alpha

	timeoutStr := getEnv("GENERATE_TIMEOUT", "60s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("GENERATE_TIMEOUT must be a positive duration, got %q", timeoutStr)
	}
	cfg.GenerateTimeout = timeout

	// Must match the output vector size of the embedding model. If the size
	// changes, the Qdrant collection has to be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.SessionsDir == "" {
		return nil, fmt.Errorf("NOTES_SESSIONS_DIR is required")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkMaxChars <= 0 || cfg.ChunkOverlap >= cfg.ChunkMaxChars {
		return nil, fmt.Errorf("chunking config invalid: CHUNK_OVERLAP (%d) must be >= 0 and < CHUNK_MAX_CHARS (%d)",
			cfg.ChunkOverlap, cfg.ChunkMaxChars)
	}

	switch cfg.GeneratorProvider {
	case ProviderOllama:
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when GENERATOR_PROVIDER=gemini")
		}
	default:
		return nil, fmt.Errorf("unknown GENERATOR_PROVIDER %q (want %q or %q)",
			cfg.GeneratorProvider, ProviderOllama, ProviderGemini)
	}

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Create the data directory for the catalog database if needed.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable, recording the first failure in errOut.
func getEnvInt(key string, defaultValue int, errOut *error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		if *errOut == nil {
			*errOut = fmt.Errorf("%s must be a valid integer: %w", key, err)
		}
		return defaultValue
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
