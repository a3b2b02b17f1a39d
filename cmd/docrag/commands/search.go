// ABOUTME: CLI command to search the vector store
// ABOUTME: Prints ranked, threshold-filtered chunks without invoking generation
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/docrag/internal/config"
	"github.com/harper/docrag/internal/core"
)

var (
	searchLimit     int
	searchThreshold float64
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed documents",
		Long: `Search indexed documents by embedding similarity.

Results are ordered closest-first; similarity is 1 minus the cosine
distance, and results below the score threshold are dropped.

Examples:
  docrag search "vector deduplication"
  docrag search --limit 10 --threshold 0.4 "error handling"
  docrag search --format json "ingestion"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results to return (default from config)")
	cmd.Flags().Float64Var(&searchThreshold, "threshold", -2, "Minimum similarity score (default from config)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if searchLimit > 0 {
		cfg.TopK = searchLimit
	}
	if searchThreshold >= -1 {
		cfg.ScoreThreshold = searchThreshold
	}
	if err := validatePositiveInt(cfg.TopK, "limit"); err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	retriever := core.NewRetriever(client, store, cfg.TopK, cfg.ScoreThreshold)
	results := retriever.Retrieve(args[0])

	if format == "json" {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", args[0])
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tSOURCE\tTEXT")
	for _, r := range results {
		source := "-"
		if s, ok := r.Metadata["filename"].(string); ok {
			source = s
		}
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\n", r.Rank, r.SimilarityScore, source, truncate(r.Text, 60))
	}
	return w.Flush()
}
