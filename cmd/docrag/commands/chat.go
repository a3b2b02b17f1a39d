// ABOUTME: CLI command for interactive retrieval-augmented chat
// ABOUTME: Streams assistant responses token-by-token in a read-eval loop
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/docrag/internal/chat"
	"github.com/harper/docrag/internal/config"
	"github.com/harper/docrag/internal/core"
)

var chatNoStream bool

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with your indexed documents",
		Long: `Start an interactive chat session. Each question is augmented with
the most relevant indexed chunks before generation.

Type 'exit' or 'end' to quit.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatNoStream, "no-stream", false, "Wait for complete responses instead of streaming")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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

	ctx := cmd.Context()
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("starting model runtime: %w", err)
	}
	defer func() { _ = client.Stop() }()

	if err := client.EnsureModel(ctx); err != nil {
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	retriever := core.NewRetriever(client, store, cfg.TopK, cfg.ScoreThreshold)
	session := chat.NewSession(retriever, client)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Assistant: %s\n", chat.WelcomeMessage)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if lower := strings.ToLower(question); lower == "exit" || lower == "end" {
			fmt.Fprintln(out, "Goodbye!")
			break
		}

		fmt.Fprint(out, "Assistant: ")
		if chatNoStream {
			answer, err := session.Ask(ctx, question)
			if err != nil {
				fmt.Fprintf(out, "\n[Error] %v\n", err)
				continue
			}
			fmt.Fprintln(out, answer)
			continue
		}

		err := session.AskStream(ctx, question, func(token string) {
			fmt.Fprint(out, token)
		})
		if err != nil {
			fmt.Fprintf(out, "\n[Error] %v\n", err)
			continue
		}
		fmt.Fprintln(out)
	}

	return scanner.Err()
}
