// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Collection != "documents" {
		t.Errorf("Collection = %s, want documents", cfg.Collection)
	}
	if !strings.HasSuffix(cfg.DataDir, "docrag") {
		t.Errorf("DataDir = %s, want docrag suffix", cfg.DataDir)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.ScoreThreshold != 0.0 {
		t.Errorf("ScoreThreshold = %f, want 0.0", cfg.ScoreThreshold)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", cfg.ChunkOverlap)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("DOCRAG_DATA_DIR", "/tmp/ragdata")
	os.Setenv("DOCRAG_COLLECTION", "manuals")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_BASE_URL", "http://localhost:11434/v1")
	os.Setenv("DOCRAG_CHAT_MODEL", "llama3.2:3b")
	os.Setenv("DOCRAG_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("OPENAI_TIMEOUT", "60s")
	os.Setenv("OPENAI_MAX_RETRIES", "5")
	os.Setenv("DOCRAG_TOP_K", "10")
	os.Setenv("DOCRAG_SCORE_THRESHOLD", "0.4")
	os.Setenv("VECTOR_DIMENSION", "3072")
	os.Setenv("DOCRAG_CHUNK_SIZE", "500")
	os.Setenv("DOCRAG_CHUNK_OVERLAP", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataDir != "/tmp/ragdata" {
		t.Errorf("DataDir = %s, want /tmp/ragdata", cfg.DataDir)
	}
	if cfg.Collection != "manuals" {
		t.Errorf("Collection = %s, want manuals", cfg.Collection)
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %s, want local endpoint", cfg.BaseURL)
	}
	if cfg.ChatModel != "llama3.2:3b" {
		t.Errorf("ChatModel = %s, want llama3.2:3b", cfg.ChatModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.ScoreThreshold != 0.4 {
		t.Errorf("ScoreThreshold = %f, want 0.4", cfg.ScoreThreshold)
	}
	if cfg.VectorDimension != 3072 {
		t.Errorf("VectorDimension = %d, want 3072", cfg.VectorDimension)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("chunking = %d/%d, want 500/50", cfg.ChunkSize, cfg.ChunkOverlap)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("DOCRAG_TOP_K", "not-a-number")
	os.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want default 5 for unparseable value", cfg.TopK)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s for unparseable value", cfg.Timeout)
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero top-k", func(c *Config) { c.TopK = 0 }},
		{"threshold above 1", func(c *Config) { c.ScoreThreshold = 1.5 }},
		{"threshold below -1", func(c *Config) { c.ScoreThreshold = -1.5 }},
		{"zero dimension", func(c *Config) { c.VectorDimension = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"excessive retries", func(c *Config) { c.MaxRetries = 11 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"overlap exceeds size", func(c *Config) { c.ChunkSize = 100; c.ChunkOverlap = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
