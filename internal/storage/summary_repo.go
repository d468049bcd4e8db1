package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cardforge/internal/models"
)

type SummaryRepo struct {
	db *DB
}

func NewSummaryRepo(db *DB) *SummaryRepo {
	return &SummaryRepo{db: db}
}

// UpsertSummary keeps one summary per collection; a regenerated summary
// replaces the previous one.
func (r *SummaryRepo) UpsertSummary(ctx context.Context, s models.Summary) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO summaries (summary_id, collection_id, content, input_word_count, summary_word_count)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (collection_id)
DO UPDATE SET
  summary_id = EXCLUDED.summary_id,
  content = EXCLUDED.content,
  input_word_count = EXCLUDED.input_word_count,
  summary_word_count = EXCLUDED.summary_word_count,
  created_at = NOW()`,
		s.SummaryID, s.CollectionID, s.Content, s.InputWordCount, s.SummaryWordCount,
	)
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

func (r *SummaryRepo) GetSummary(ctx context.Context, collectionID string) (models.Summary, bool, error) {
	var s models.Summary
	err := r.db.Pool.QueryRow(ctx, `
SELECT summary_id, collection_id::text, content, input_word_count, summary_word_count, created_at
FROM summaries
WHERE collection_id=$1`, collectionID).
		Scan(&s.SummaryID, &s.CollectionID, &s.Content, &s.InputWordCount, &s.SummaryWordCount, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Summary{}, false, nil
	}
	if err != nil {
		return models.Summary{}, false, fmt.Errorf("get summary: %w", err)
	}
	return s, true, nil
}
