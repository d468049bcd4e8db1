package storage

import (
	"context"
	"fmt"

	"cardforge/internal/models"
)

type DocumentRepo struct {
	db *DB
}

func NewDocumentRepo(db *DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) UpsertDocument(ctx context.Context, d models.Document) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO documents (document_id, collection_id, filename, media_type, status, fail_reason, card_count)
VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), $7)
ON CONFLICT (document_id)
DO UPDATE SET
  collection_id = EXCLUDED.collection_id,
  filename = EXCLUDED.filename,
  media_type = EXCLUDED.media_type,
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  card_count = EXCLUDED.card_count,
  updated_at = NOW()`,
		d.DocumentID, d.CollectionID, d.Filename, d.MediaType, d.Status, d.FailReason, d.CardCount,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) UpdateDocumentStatus(ctx context.Context, documentID, status, failReason string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE documents SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE document_id=$1`, documentID, status, failReason)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

func (r *DocumentRepo) UpdateDocumentCardCount(ctx context.Context, documentID string, cardCount int) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE documents SET card_count=$2, updated_at=NOW() WHERE document_id=$1`, documentID, cardCount)
	if err != nil {
		return fmt.Errorf("update document card count: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetDocument(ctx context.Context, collectionID, documentID string) (models.Document, error) {
	var d models.Document
	err := r.db.Pool.QueryRow(ctx, `
SELECT document_id, collection_id::text, filename, media_type, status, COALESCE(fail_reason,''), card_count, created_at, updated_at
FROM documents
WHERE collection_id=$1 AND document_id=$2`, collectionID, documentID).
		Scan(&d.DocumentID, &d.CollectionID, &d.Filename, &d.MediaType, &d.Status, &d.FailReason, &d.CardCount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return models.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) ListDocumentsByCollection(ctx context.Context, collectionID string) ([]models.Document, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT document_id, collection_id::text, filename, media_type, status, COALESCE(fail_reason,''), card_count, created_at, updated_at
FROM documents
WHERE collection_id=$1
ORDER BY created_at DESC`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]models.Document, 0)
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.DocumentID, &d.CollectionID, &d.Filename, &d.MediaType, &d.Status, &d.FailReason, &d.CardCount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}
