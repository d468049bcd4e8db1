package activities

import (
	"cardforge/internal/generation"
	"cardforge/internal/prompts"
)

type ComputeDocumentIDInput struct {
	DocumentPath string `json:"document_path"`
}

type ComputeDocumentIDOutput struct {
	DocumentID string `json:"document_id"`
}

type ExtractTextInput struct {
	DocumentPath string `json:"document_path"`
	MediaType    string `json:"media_type"`
}

type ExtractTextOutput struct {
	Text string `json:"text"`
}

type GenerateDeckInput struct {
	CollectionID string          `json:"collection_id"`
	DocumentID   string          `json:"document_id"`
	Text         string          `json:"text"`
	Options      prompts.Options `json:"options"`
}

type GenerateDeckOutput struct {
	Cards        []generation.Candidate `json:"cards"`
	ProviderName string                 `json:"provider_name"`
}

type SummarizeTextInput struct {
	CollectionID string `json:"collection_id"`
	Text         string `json:"text"`
}

type SummarizeTextOutput struct {
	Summary          string `json:"summary"`
	InputWordCount   int    `json:"input_word_count"`
	SummaryWordCount int    `json:"summary_word_count"`
}

type PersistDeckInput struct {
	CollectionID string                 `json:"collection_id"`
	DocumentID   string                 `json:"document_id"`
	Cards        []generation.Candidate `json:"cards"`
	Append       bool                   `json:"append"`
}

type PersistDeckOutput struct {
	CardCount int `json:"card_count"`
}

type PersistSummaryInput struct {
	CollectionID     string `json:"collection_id"`
	Summary          string `json:"summary"`
	InputWordCount   int    `json:"input_word_count"`
	SummaryWordCount int    `json:"summary_word_count"`
}

type UpdateDocumentStatusInput struct {
	DocumentID   string `json:"document_id"`
	CollectionID string `json:"collection_id"`
	Filename     string `json:"filename"`
	MediaType    string `json:"media_type"`
	Status       string `json:"status"`
	FailReason   string `json:"fail_reason"`
	CardCount    int    `json:"card_count"`
}

type WriteDeckArtifactsInput struct {
	CollectionID  string                 `json:"collection_id"`
	DocumentID    string                 `json:"document_id"`
	Cards         []generation.Candidate `json:"cards"`
	ProcessingLog map[string]any         `json:"processing_log"`
}

type WriteSummaryArtifactInput struct {
	CollectionID string `json:"collection_id"`
	DocumentID   string `json:"document_id"`
	Summary      string `json:"summary"`
}
