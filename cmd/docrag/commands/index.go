// ABOUTME: CLI command to index documents into the vector store
// ABOUTME: Loads, chunks, embeds, and stores a directory with deduplication
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/docrag/internal/config"
	"github.com/harper/docrag/internal/ingest"
)

var (
	indexChunkSize    int
	indexChunkOverlap int
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <directory>",
		Short: "Index documents into the vector store",
		Long: `Index all .txt and .md files under a directory.

Documents are split into overlapping chunks, embedded, and stored with a
content-derived id. Already-indexed chunks are skipped, so indexing the
same corpus twice adds nothing.

Examples:
  docrag index ./docs
  docrag index --chunk-size 500 --chunk-overlap 100 ./notes`,
		Args: cobra.ExactArgs(1),
		RunE: runIndex,
	}

	cmd.Flags().IntVar(&indexChunkSize, "chunk-size", 0, "Maximum characters per chunk (default from config)")
	cmd.Flags().IntVar(&indexChunkOverlap, "chunk-overlap", -1, "Overlapping characters between chunks (default from config)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if indexChunkSize > 0 {
		cfg.ChunkSize = indexChunkSize
	}
	if indexChunkOverlap >= 0 {
		cfg.ChunkOverlap = indexChunkOverlap
	}

	docs, err := ingest.LoadDirectory(args[0])
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no supported documents found under %s", args[0])
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d document(s) from %s\n", len(docs), args[0])
	}

	chunker := ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	chunks := chunker.Split(docs)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Split into %d chunk(s)\n", len(chunks))
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := client.GenerateEmbeddings(texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := store.Add(chunks, vectors)
	if err != nil {
		return fmt.Errorf("storing documents: %w", err)
	}

	total, err := store.Count()
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d, skipped %d (already indexed)\n", result.Added, result.Skipped)
		fmt.Fprintf(cmd.OutOrStdout(), "Collection %q now holds %d chunk(s)\n", store.Collection(), total)
	}
	return nil
}
