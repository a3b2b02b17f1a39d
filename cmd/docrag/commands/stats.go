// ABOUTME: CLI command to show vector store collection statistics
// ABOUTME: Prints collection name, location, dimension, and record count
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/docrag/internal/config"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Long:  `Display the vector store location, collection name, vector dimension, and document count.`,
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	if format == "json" {
		out, err := json.MarshalIndent(map[string]interface{}{
			"path":       store.Path(),
			"collection": store.Collection(),
			"dimension":  store.Dimension(),
			"documents":  count,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Path:       %s\n", store.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Collection: %s\n", store.Collection())
	fmt.Fprintf(cmd.OutOrStdout(), "Dimension:  %d\n", store.Dimension())
	fmt.Fprintf(cmd.OutOrStdout(), "Documents:  %d\n", count)
	return nil
}
