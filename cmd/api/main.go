package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"lorekeeper/internal/config"
	"lorekeeper/internal/http"
	"lorekeeper/internal/indexer"
	"lorekeeper/internal/llm"
	"lorekeeper/internal/retrieval"
	"lorekeeper/internal/storage"
	"lorekeeper/internal/vectorstore"
)

// defaultK is the candidate count used when /ask requests omit k.
const defaultK = 30

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize catalog database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	docRepo := storage.NewDocumentRepo(db)
	entityRepo := storage.NewEntityRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create ingestion pipeline
	pipeline, err := indexer.NewPipeline(
		indexer.Sources{
			Sessions:      cfg.SessionsDir,
			Characters:    cfg.CharactersDir,
			Locations:     cfg.LocationsDir,
			Organizations: cfg.OrganizationsDir,
		},
		docRepo,
		entityRepo,
		chunkRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.ChunkMaxChars,
		cfg.ChunkOverlap,
	)
	if err != nil {
		log.Fatalf("Failed to create ingestion pipeline: %v", err)
	}

	// Select generation provider
	var generator llm.Generator
	switch cfg.GeneratorProvider {
	case config.ProviderGemini:
		generator, err = llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini provider: %v", err)
		}
		slog.Info("Generation provider ready", "provider", cfg.GeneratorProvider, "model", cfg.GeminiModel)
	default:
		generator = llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel)
		slog.Info("Generation provider ready", "provider", cfg.GeneratorProvider, "model", cfg.OllamaModel)
	}

	// Optional reranker
	var scorer retrieval.Scorer
	if cfg.EnableReranker {
		scorer = llm.NewRerankClient(cfg.RerankerBaseURL, cfg.RerankerModel)
		slog.Info("Reranker enabled", "model", cfg.RerankerModel)
	}

	coordinator := retrieval.NewCoordinator(
		embedder,
		vectorStore,
		chunkRepo,
		docRepo,
		entityRepo,
		cfg.QdrantCollection,
		cfg.HybridAlpha,
	)
	engine := retrieval.NewEngine(
		coordinator,
		scorer,
		generator,
		cfg.MaxContextChunks,
		cfg.MaxAnswerTokens,
		cfg.GenerateTimeout,
	)
	slog.Info("Ask engine initialized")

	deps := &http.Deps{
		Engine:         engine,
		Pipeline:       pipeline,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
		DefaultK:       defaultK,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
