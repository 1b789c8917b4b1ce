package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docchat-ai/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for the document registry.
type DocumentStore interface {
	// Upsert inserts or replaces the registry row for one doc_id+version.
	Upsert(ctx context.Context, doc *Document) error
	// ListAll returns all registered document versions ordered by doc_id, version.
	ListAll(ctx context.Context) ([]*Document, error)
	// ListByDoc returns all versions of one document ordered by version.
	ListByDoc(ctx context.Context, docID string) ([]*Document, error)
	// GetActive returns the active version of a document. Returns ErrNotFound
	// if the document has no active version.
	GetActive(ctx context.Context, docID string) (*Document, error)
	// SetActive marks the given version active and deactivates every other
	// version of the same doc_id. Returns ErrNotFound if the version is not
	// registered.
	SetActive(ctx context.Context, docID string, version int) error
}

// DocumentRepo provides methods for document registry operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts or replaces the registry row for one doc_id+version.
// Re-ingesting the same version overwrites the previous row, mirroring the
// overwrite semantics of the vector store.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (doc_id, version, is_active, source, chunk_count, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(doc_id, version) DO UPDATE SET
		   is_active = excluded.is_active,
		   source = excluded.source,
		   chunk_count = excluded.chunk_count,
		   ingested_at = excluded.ingested_at`,
		doc.DocID, doc.Version, doc.IsActive, doc.Source, doc.ChunkCount, doc.IngestedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// ListAll returns all registered document versions ordered by doc_id, version.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT doc_id, version, is_active, source, chunk_count, ingested_at FROM documents ORDER BY doc_id, version",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDocuments(rows)
}

// ListByDoc returns all versions of one document ordered by version.
func (r *DocumentRepo) ListByDoc(ctx context.Context, docID string) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT doc_id, version, is_active, source, chunk_count, ingested_at FROM documents WHERE doc_id = ? ORDER BY version",
		docID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query document versions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDocuments(rows)
}

// GetActive returns the active version of a document.
func (r *DocumentRepo) GetActive(ctx context.Context, docID string) (*Document, error) {
	var doc Document
	err := r.db.QueryRowContext(ctx,
		"SELECT doc_id, version, is_active, source, chunk_count, ingested_at FROM documents WHERE doc_id = ? AND is_active = 1",
		docID,
	).Scan(&doc.DocID, &doc.Version, &doc.IsActive, &doc.Source, &doc.ChunkCount, &doc.IngestedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active document: %w", err)
	}

	return &doc, nil
}

// SetActive marks the given version active and deactivates every other
// version of the same doc_id, in one transaction.
func (r *DocumentRepo) SetActive(ctx context.Context, docID string, version int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"UPDATE documents SET is_active = 0 WHERE doc_id = ? AND version != ?",
		docID, version,
	); err != nil {
		return fmt.Errorf("failed to deactivate versions: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE documents SET is_active = 1 WHERE doc_id = ? AND version = ?",
		docID, version,
	)
	if err != nil {
		return fmt.Errorf("failed to activate version: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]*Document, error) {
	var docs []*Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.DocID, &doc.Version, &doc.IsActive, &doc.Source, &doc.ChunkCount, &doc.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}
