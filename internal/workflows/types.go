package workflows

import "cardforge/internal/prompts"

type DocumentProcessInput struct {
	CollectionID string          `json:"collection_id"`
	DocumentID   string          `json:"document_id,omitempty"`
	DocumentPath string          `json:"document_path"`
	Filename     string          `json:"filename"`
	MediaType    string          `json:"media_type"`
	Options      prompts.Options `json:"options"`
	Append       bool            `json:"append"`
	Summarize    bool            `json:"summarize"`
}

type DocumentSummarizeInput struct {
	CollectionID string `json:"collection_id"`
	DocumentID   string `json:"document_id,omitempty"`
	DocumentPath string `json:"document_path"`
	Filename     string `json:"filename"`
	MediaType    string `json:"media_type"`
}

type DocumentStatus struct {
	DocumentID  string            `json:"document_id"`
	Filename    string            `json:"filename"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	FailReason  string            `json:"fail_reason,omitempty"`
	CardCount   int               `json:"card_count"`
	Steps       map[string]string `json:"steps"`
}
