package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cardforge/internal/config"
	"cardforge/internal/extract"
	"cardforge/internal/generation"
	"cardforge/internal/models"
	"cardforge/internal/providers"
	"cardforge/internal/storage"
	"cardforge/internal/util"
)

type Activities struct {
	cfg           config.Config
	documentRepo  *storage.DocumentRepo
	flashcardRepo *storage.FlashcardRepo
	summaryRepo   *storage.SummaryRepo
	assembler     *generation.Assembler
	reducer       *generation.Reducer
	providerName  string
	log           zerolog.Logger
}

func New(cfg config.Config, db *storage.DB, log zerolog.Logger) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	llm, llmRef := pm.ActiveLLMProvider()
	names := make([]string, 0, pm.LLMCount())
	for _, ref := range pm.LLMProviderRefs() {
		names = append(names, ref.Name)
	}
	log.Info().Strs("llm_providers", names).Str("active", llmRef.Name).Msg("llm providers loaded")
	client := generation.NewClient(llm, log)
	return &Activities{
		cfg:           cfg,
		documentRepo:  storage.NewDocumentRepo(db),
		flashcardRepo: storage.NewFlashcardRepo(db),
		summaryRepo:   storage.NewSummaryRepo(db),
		assembler:     generation.NewAssembler(client, cfg.FlashcardChunkSize, log),
		reducer:       generation.NewReducer(client, cfg.SummaryChunkSize, log),
		providerName:  llmRef.Name,
		log:           log,
	}, nil
}

// ComputeDocumentIDActivity hashes the uploaded file so re-uploading the same
// document lands on the same id.
func (a *Activities) ComputeDocumentIDActivity(ctx context.Context, in ComputeDocumentIDInput) (ComputeDocumentIDOutput, error) {
	_ = ctx
	f, err := os.Open(in.DocumentPath)
	if err != nil {
		return ComputeDocumentIDOutput{}, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	sum, err := util.SHA256HexFromReader(f)
	if err != nil {
		return ComputeDocumentIDOutput{}, fmt.Errorf("hash file: %w", err)
	}
	return ComputeDocumentIDOutput{DocumentID: sum}, nil
}

func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	_ = ctx
	buf, err := os.ReadFile(in.DocumentPath)
	if err != nil {
		return ExtractTextOutput{}, fmt.Errorf("read document: %w", err)
	}
	text, err := extract.Extract(buf, in.MediaType)
	if err != nil {
		return ExtractTextOutput{}, generation.NewFailure(generation.KindExtraction, err)
	}
	text = util.SanitizeText(text)
	if text == "" {
		return ExtractTextOutput{}, generation.NewFailure(generation.KindExtraction, util.ErrNoExtractableText)
	}
	return ExtractTextOutput{Text: text}, nil
}

func (a *Activities) GenerateDeckActivity(ctx context.Context, in GenerateDeckInput) (GenerateDeckOutput, error) {
	cards, err := a.assembler.BuildDeck(ctx, in.Text, in.Options)
	if err != nil {
		return GenerateDeckOutput{}, err
	}
	return GenerateDeckOutput{Cards: cards, ProviderName: a.providerName}, nil
}

func (a *Activities) SummarizeTextActivity(ctx context.Context, in SummarizeTextInput) (SummarizeTextOutput, error) {
	summary, err := a.reducer.Summarize(ctx, in.Text)
	if err != nil {
		return SummarizeTextOutput{}, err
	}
	return SummarizeTextOutput{
		Summary:          summary,
		InputWordCount:   util.CountWords(in.Text),
		SummaryWordCount: util.CountWords(summary),
	}, nil
}

func (a *Activities) PersistDeckActivity(ctx context.Context, in PersistDeckInput) (PersistDeckOutput, error) {
	cards := make([]models.Flashcard, 0, len(in.Cards))
	for i, c := range in.Cards {
		cards = append(cards, models.Flashcard{
			FlashcardID:   uuid.NewString(),
			CollectionID:  in.CollectionID,
			Position:      i,
			Question:      c.Question,
			CorrectAnswer: c.CorrectAnswer,
			Options:       c.Options,
		})
	}
	var err error
	if in.Append {
		err = a.flashcardRepo.AppendFlashcards(ctx, in.CollectionID, cards)
	} else {
		err = a.flashcardRepo.ReplaceFlashcards(ctx, in.CollectionID, cards)
	}
	if err != nil {
		return PersistDeckOutput{}, err
	}
	n, err := a.flashcardRepo.CountFlashcards(ctx, in.CollectionID)
	if err != nil {
		return PersistDeckOutput{}, err
	}
	if in.DocumentID != "" {
		if err := a.documentRepo.UpdateDocumentCardCount(ctx, in.DocumentID, len(in.Cards)); err != nil {
			return PersistDeckOutput{}, err
		}
	}
	return PersistDeckOutput{CardCount: n}, nil
}

func (a *Activities) PersistSummaryActivity(ctx context.Context, in PersistSummaryInput) error {
	return a.summaryRepo.UpsertSummary(ctx, models.Summary{
		SummaryID:        uuid.NewString(),
		CollectionID:     in.CollectionID,
		Content:          in.Summary,
		InputWordCount:   in.InputWordCount,
		SummaryWordCount: in.SummaryWordCount,
	})
}

func (a *Activities) UpdateDocumentStatusActivity(ctx context.Context, in UpdateDocumentStatusInput) error {
	return a.documentRepo.UpsertDocument(ctx, models.Document{
		DocumentID:   in.DocumentID,
		CollectionID: in.CollectionID,
		Filename:     in.Filename,
		MediaType:    in.MediaType,
		Status:       in.Status,
		FailReason:   in.FailReason,
		CardCount:    in.CardCount,
	})
}

func (a *Activities) WriteDeckArtifactsActivity(ctx context.Context, in WriteDeckArtifactsInput) error {
	_ = ctx
	base := filepath.Join(a.cfg.DataOutRoot, in.CollectionID, in.DocumentID)
	if err := util.WriteJSONAtomic(filepath.Join(base, "deck.json"), in.Cards); err != nil {
		return err
	}
	rows := make([]any, 0, len(in.Cards))
	for _, c := range in.Cards {
		rows = append(rows, c)
	}
	if err := util.WriteJSONLinesAtomic(filepath.Join(base, "cards.jsonl"), rows); err != nil {
		return err
	}
	return util.WriteJSONAtomic(filepath.Join(base, "processing_log.json"), in.ProcessingLog)
}

func (a *Activities) WriteSummaryArtifactActivity(ctx context.Context, in WriteSummaryArtifactInput) error {
	_ = ctx
	path := filepath.Join(a.cfg.DataOutRoot, in.CollectionID, in.DocumentID, "summary.md")
	return util.WriteTextAtomic(path, in.Summary)
}
