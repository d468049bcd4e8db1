package models

import "time"

type Collection struct {
	CollectionID string    `json:"collection_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type Document struct {
	DocumentID   string    `json:"document_id"`
	CollectionID string    `json:"collection_id"`
	Filename     string    `json:"filename"`
	MediaType    string    `json:"media_type"`
	Status       string    `json:"status"`
	FailReason   string    `json:"fail_reason,omitempty"`
	CardCount    int       `json:"card_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Flashcard struct {
	FlashcardID   string    `json:"flashcard_id"`
	CollectionID  string    `json:"collection_id"`
	Position      int       `json:"position"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correct_answer"`
	Options       []string  `json:"options"`
	CreatedAt     time.Time `json:"created_at"`
}

type Summary struct {
	SummaryID        string    `json:"summary_id"`
	CollectionID     string    `json:"collection_id"`
	Content          string    `json:"content"`
	InputWordCount   int       `json:"input_word_count"`
	SummaryWordCount int       `json:"summary_word_count"`
	CreatedAt        time.Time `json:"created_at"`
}
