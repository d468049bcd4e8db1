package generation

// Candidate is one flashcard as parsed from a model response, before it is
// persisted. Options always holds exactly 4 entries, one of which equals
// CorrectAnswer.
type Candidate struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
}

type flashcardPayload struct {
	Flashcards []Candidate `json:"flashcards"`
}

type summaryPayload struct {
	Summary string `json:"summary"`
}
