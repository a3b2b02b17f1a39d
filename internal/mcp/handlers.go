// ABOUTME: MCP tool handler implementations for the docrag server
// ABOUTME: Wires indexing and retrieval over the vector store with error handling
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/docrag/internal/core"
	"github.com/harper/docrag/internal/ingest"
	"github.com/harper/docrag/internal/storage"
)

// BatchEmbedder embeds a batch of texts in one call
type BatchEmbedder interface {
	GenerateEmbeddings(texts []string) ([][]float64, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store     *storage.Store
	retriever *core.Retriever
	embedder  BatchEmbedder
	chunker   *ingest.Chunker
}

// IndexDocuments handles the index_documents tool
func (h *Handlers) IndexDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	docs, err := ingest.LoadDirectory(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading documents failed: %v", err)), nil
	}

	chunks := h.chunker.Split(docs)
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := h.embedder.GenerateEmbeddings(texts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}

	result, err := h.store.Add(chunks, vectors)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing documents failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"documents_loaded": len(docs),
		"chunks":           len(chunks),
		"added":            result.Added,
		"skipped":          result.Skipped,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// QueryDocuments handles the query_documents tool
func (h *Handlers) QueryDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)
	if maxResults <= 0 {
		return mcp.NewToolResultError("max_results must be positive"), nil
	}

	docs := h.retriever.RetrieveTopK(query, maxResults)

	response := map[string]interface{}{
		"query":   query,
		"count":   len(docs),
		"results": docs,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// CollectionStats handles the collection_stats tool
func (h *Handlers) CollectionStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count, err := h.store.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("counting documents failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"collection": h.store.Collection(),
		"path":       h.store.Path(),
		"documents":  count,
		"dimension":  h.store.Dimension(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
