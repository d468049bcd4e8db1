package storage

import (
	"context"
	"fmt"

	"cardforge/internal/models"
)

type FlashcardRepo struct {
	db *DB
}

func NewFlashcardRepo(db *DB) *FlashcardRepo {
	return &FlashcardRepo{db: db}
}

// ReplaceFlashcards swaps a collection's deck in one transaction. Positions
// are rewritten from the slice order so reads come back in generation order.
func (r *FlashcardRepo) ReplaceFlashcards(ctx context.Context, collectionID string, cards []models.Flashcard) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx replace flashcards: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM flashcards WHERE collection_id=$1`, collectionID); err != nil {
		return fmt.Errorf("clear flashcards: %w", err)
	}
	for i, c := range cards {
		_, err := tx.Exec(ctx, `
INSERT INTO flashcards (flashcard_id, collection_id, position, question, correct_answer, options)
VALUES ($1, $2, $3, $4, $5, $6)`,
			c.FlashcardID, collectionID, i, c.Question, c.CorrectAnswer, c.Options,
		)
		if err != nil {
			return fmt.Errorf("insert flashcard %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit flashcards tx: %w", err)
	}
	return nil
}

// AppendFlashcards adds cards after the current end of the deck.
func (r *FlashcardRepo) AppendFlashcards(ctx context.Context, collectionID string, cards []models.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx append flashcards: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var next int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position)+1, 0) FROM flashcards WHERE collection_id=$1`, collectionID).Scan(&next); err != nil {
		return fmt.Errorf("next flashcard position: %w", err)
	}
	for i, c := range cards {
		_, err := tx.Exec(ctx, `
INSERT INTO flashcards (flashcard_id, collection_id, position, question, correct_answer, options)
VALUES ($1, $2, $3, $4, $5, $6)`,
			c.FlashcardID, collectionID, next+i, c.Question, c.CorrectAnswer, c.Options,
		)
		if err != nil {
			return fmt.Errorf("append flashcard %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit flashcards tx: %w", err)
	}
	return nil
}

func (r *FlashcardRepo) ListFlashcardsByCollection(ctx context.Context, collectionID string) ([]models.Flashcard, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT flashcard_id, collection_id::text, position, question, correct_answer, options, created_at
FROM flashcards
WHERE collection_id=$1
ORDER BY position ASC`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	out := make([]models.Flashcard, 0, 64)
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.FlashcardID, &c.CollectionID, &c.Position, &c.Question, &c.CorrectAnswer, &c.Options, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan flashcard: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flashcards: %w", err)
	}
	return out, nil
}

func (r *FlashcardRepo) CountFlashcards(ctx context.Context, collectionID string) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM flashcards WHERE collection_id=$1`, collectionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count flashcards: %w", err)
	}
	return n, nil
}
