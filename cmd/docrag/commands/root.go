// ABOUTME: Root CLI command and global flags for docrag
// ABOUTME: Wires subcommands for indexing, search, chat, and stats
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags
var (
	verbose bool
	quiet   bool
	format  string
)

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docrag",
		Short: "Chat with your documents using retrieval-augmented generation",
		Long: `docrag indexes local documents into a persistent vector store and
answers questions about them with an LLM, injecting the most relevant
chunks into every prompt.

Indexing is idempotent: documents are deduplicated by a content-derived
id, so re-running index over the same corpus adds nothing.

Examples:
  docrag index ./docs
  docrag search "error handling"
  docrag chat`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format (auto, text, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
