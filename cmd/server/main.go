// ABOUTME: Main entry point for the docrag MCP server with stdio transport
// ABOUTME: Initializes the vector store, retriever, and all MCP tools
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/docrag/internal/config"
	"github.com/harper/docrag/internal/core"
	"github.com/harper/docrag/internal/ingest"
	"github.com/harper/docrag/internal/llm"
	"github.com/harper/docrag/internal/mcp"
	"github.com/harper/docrag/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OPENAI_BASE_URL") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embeddings will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.Open(cfg.DataDir, cfg.Collection, cfg.VectorDimension)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}
	defer func() { _ = store.Close() }()

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.BaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	retriever := core.NewRetriever(client, store, cfg.TopK, cfg.ScoreThreshold)
	chunker := ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"docrag",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, store, retriever, client, chunker)

	// Start server with stdio transport
	log.Println("docrag MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
