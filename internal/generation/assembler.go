package generation

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cardforge/internal/prompts"
	"cardforge/internal/util"
)

// Assembler turns one document's text into a full deck of candidates. Chunks
// are processed concurrently; output order follows chunk order regardless of
// completion order. Any chunk failure fails the whole deck: a deck with
// silent holes is worse than no deck.
type Assembler struct {
	client    *Client
	chunkSize int
	log       zerolog.Logger
}

func NewAssembler(client *Client, chunkSize int, log zerolog.Logger) *Assembler {
	if chunkSize <= 0 {
		chunkSize = 4000
	}
	return &Assembler{client: client, chunkSize: chunkSize, log: log}
}

func (a *Assembler) BuildDeck(ctx context.Context, text string, opts prompts.Options) ([]Candidate, error) {
	chunks := util.SplitText(text, a.chunkSize)
	a.log.Info().Int("chunks", len(chunks)).Int("chars", len(text)).Msg("building deck")

	perChunk := make([][]Candidate, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			cards, err := a.client.GenerateFlashcards(gctx, chunk, opts)
			if err != nil {
				return err
			}
			perChunk[i] = cards
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deck := make([]Candidate, 0, len(chunks)*4)
	for _, cards := range perChunk {
		deck = append(deck, cards...)
	}
	a.log.Info().Int("cards", len(deck)).Msg("deck assembled")
	return deck, nil
}
