// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates config loading, store and client construction
package commands

import (
	"fmt"

	"github.com/harper/docrag/internal/config"
	"github.com/harper/docrag/internal/llm"
	"github.com/harper/docrag/internal/storage"
)

// openStore opens the configured vector store collection
func openStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.DataDir, cfg.Collection, cfg.VectorDimension)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	return store, nil
}

// newLLMClient builds the OpenAI-compatible client from config
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
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
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}
	return client, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
