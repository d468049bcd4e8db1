package generation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cardforge/internal/prompts"
	"cardforge/internal/util"
)

// Reducer produces a single document summary. Text that fits in one chunk is
// summarized directly; longer text gets a partial summary per chunk and a
// final pass over the concatenated partials.
type Reducer struct {
	client    *Client
	chunkSize int
	log       zerolog.Logger
}

func NewReducer(client *Client, chunkSize int, log zerolog.Logger) *Reducer {
	if chunkSize <= 0 {
		chunkSize = 6000
	}
	return &Reducer{client: client, chunkSize: chunkSize, log: log}
}

func (r *Reducer) Summarize(ctx context.Context, text string) (string, error) {
	chunks := util.SplitText(text, r.chunkSize)
	if len(chunks) == 1 {
		return r.client.Summarize(ctx, chunks[0], prompts.FinalSummaryWordLimit, false)
	}
	r.log.Info().Int("chunks", len(chunks)).Msg("summarizing in two passes")

	partials := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			s, err := r.client.Summarize(gctx, chunk, prompts.PartialSummaryWordLimit, true)
			if err != nil {
				return err
			}
			partials[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return r.client.Summarize(ctx, strings.Join(partials, "\n\n"), prompts.FinalSummaryWordLimit, false)
}
