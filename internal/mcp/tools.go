// ABOUTME: MCP tool definitions and registration for the docrag server
// ABOUTME: Defines JSON schemas for the indexing and retrieval tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/docrag/internal/core"
	"github.com/harper/docrag/internal/ingest"
	"github.com/harper/docrag/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Store, retriever *core.Retriever, embedder BatchEmbedder, chunker *ingest.Chunker) *Handlers {
	handlers := &Handlers{
		store:     store,
		retriever: retriever,
		embedder:  embedder,
		chunker:   chunker,
	}

	// 1. index_documents - Load, chunk, embed, and store a directory
	server.AddTool(mcp.Tool{
		Name:        "index_documents",
		Description: "Index all text documents under a directory into the vector store. Re-indexing the same documents is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Directory to index (.txt and .md files)",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IndexDocuments)

	// 2. query_documents - Retrieve relevant chunks for a query
	server.AddTool(mcp.Tool{
		Name:        "query_documents",
		Description: "Retrieve the most relevant document chunks for a query using embedding similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryDocuments)

	// 3. collection_stats - Describe the backing collection
	server.AddTool(mcp.Tool{
		Name:        "collection_stats",
		Description: "Get the vector store collection name, location, and document count.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CollectionStats)

	return handlers
}
