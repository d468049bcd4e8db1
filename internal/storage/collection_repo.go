package storage

import (
	"context"
	"fmt"

	"cardforge/internal/models"
)

type CollectionRepo struct {
	db *DB
}

func NewCollectionRepo(db *DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

func (r *CollectionRepo) CreateCollection(ctx context.Context, c models.Collection) error {
	_, err := r.db.Pool.Exec(ctx, `INSERT INTO collections (collection_id, name) VALUES ($1, $2)`, c.CollectionID, c.Name)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *CollectionRepo) ListCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT collection_id::text, name, created_at FROM collections ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	out := make([]models.Collection, 0)
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.CollectionID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return out, nil
}

func (r *CollectionRepo) GetCollection(ctx context.Context, collectionID string) (models.Collection, error) {
	var c models.Collection
	err := r.db.Pool.QueryRow(ctx, `SELECT collection_id::text, name, created_at FROM collections WHERE collection_id=$1`, collectionID).
		Scan(&c.CollectionID, &c.Name, &c.CreatedAt)
	if err != nil {
		return models.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return c, nil
}

// DeleteCollection removes the collection and everything hanging off it.
func (r *CollectionRepo) DeleteCollection(ctx context.Context, collectionID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx delete collection: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, q := range []string{
		`DELETE FROM flashcards WHERE collection_id=$1`,
		`DELETE FROM summaries WHERE collection_id=$1`,
		`DELETE FROM documents WHERE collection_id=$1`,
		`DELETE FROM collections WHERE collection_id=$1`,
	} {
		if _, err := tx.Exec(ctx, q, collectionID); err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete collection: %w", err)
	}
	return nil
}
