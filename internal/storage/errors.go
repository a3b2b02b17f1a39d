// ABOUTME: Error taxonomy for the vector store
// ABOUTME: Sentinel errors matched with errors.Is by callers
package storage

import "errors"

var (
	// ErrStorageInit indicates the backing storage could not be created or
	// opened. Fatal at startup, not retried.
	ErrStorageInit = errors.New("vector store initialization failed")

	// ErrArityMismatch indicates a caller contract violation: the document
	// batch and the embedding batch do not line up.
	ErrArityMismatch = errors.New("document and embedding batches do not match")

	// ErrStorageWrite indicates a persisted write failed mid-batch. Rows
	// written before the failure remain written.
	ErrStorageWrite = errors.New("vector store write failed")

	// ErrQuery indicates a malformed query vector or a backend read failure.
	ErrQuery = errors.New("vector store query failed")
)
