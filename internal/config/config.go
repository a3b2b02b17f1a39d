// ABOUTME: Centralized configuration for the docrag pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the RAG pipeline
type Config struct {
	// Storage settings
	DataDir    string
	Collection string

	// OpenAI-compatible endpoint settings
	OpenAIKey      string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	TopK            int
	ScoreThreshold  float64
	VectorDimension int

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DataDir:         getEnv("DOCRAG_DATA_DIR", DefaultDataDir()),
		Collection:      getEnv("DOCRAG_COLLECTION", "documents"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		BaseURL:         os.Getenv("OPENAI_BASE_URL"),
		ChatModel:       getEnv("DOCRAG_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("DOCRAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		TopK:            getEnvInt("DOCRAG_TOP_K", 5),
		ScoreThreshold:  getEnvFloat("DOCRAG_SCORE_THRESHOLD", 0.0),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		ChunkSize:       getEnvInt("DOCRAG_CHUNK_SIZE", 1000),
		ChunkOverlap:    getEnvInt("DOCRAG_CHUNK_OVERLAP", 200),
	}

	return cfg, cfg.Validate()
}

// DefaultDataDir returns the default data directory following XDG spec
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/docrag"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "docrag")
}

func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("DOCRAG_TOP_K must be positive, got %d", c.TopK)
	}
	if c.ScoreThreshold < -1 || c.ScoreThreshold > 1 {
		return fmt.Errorf("DOCRAG_SCORE_THRESHOLD must be -1 to 1, got %f", c.ScoreThreshold)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("DOCRAG_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DOCRAG_CHUNK_OVERLAP must be 0 to chunk size, got %d", c.ChunkOverlap)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
