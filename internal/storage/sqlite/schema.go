// ABOUTME: SQLite database schema for document vector storage
// ABOUTME: Creates collections and documents tables with content-id keys
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Logical collections within one database file
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Document chunks keyed by content-derived id
CREATE TABLE IF NOT EXISTS documents (
    id TEXT NOT NULL,
    collection TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    doc_index INTEGER NOT NULL,
    doc_length INTEGER NOT NULL,
    metadata TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (id, collection)
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
