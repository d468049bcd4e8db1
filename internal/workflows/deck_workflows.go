package workflows

import (
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"cardforge/internal/activities"
	"cardforge/internal/generation"
)

const QueryGetDocumentStatus = "GetDocumentStatus"

// DocumentProcessWorkflow drives one uploaded document end to end: extract,
// generate a deck, persist it, write artifacts. Failures the user can act on
// (no text, bad configuration, exhausted quota) mark the document failed and
// complete the workflow; everything else propagates as a workflow error.
func DocumentProcessWorkflow(ctx workflow.Context, input DocumentProcessInput) (string, error) {
	status := DocumentStatus{
		DocumentID:  input.DocumentID,
		Filename:    input.Filename,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetDocumentStatus, func() (DocumentStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	if status.DocumentID == "" {
		status.CurrentStep = "compute_document_id"
		status.Steps[status.CurrentStep] = "processing"
		var computeOut activities.ComputeDocumentIDOutput
		if err := workflow.ExecuteActivity(ctx, "ComputeDocumentIDActivity", activities.ComputeDocumentIDInput{DocumentPath: input.DocumentPath}).Get(ctx, &computeOut); err != nil {
			return "", err
		}
		status.DocumentID = computeOut.DocumentID
		status.Steps[status.CurrentStep] = "done"
	}

	_ = workflow.ExecuteActivity(ctx, "UpdateDocumentStatusActivity", activities.UpdateDocumentStatusInput{
		DocumentID:   status.DocumentID,
		CollectionID: input.CollectionID,
		Filename:     input.Filename,
		MediaType:    input.MediaType,
		Status:       "processing",
	}).Get(ctx, nil)

	status.CurrentStep = "extract_text"
	status.Steps[status.CurrentStep] = "processing"
	var textOut activities.ExtractTextOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{DocumentPath: input.DocumentPath, MediaType: input.MediaType}).Get(ctx, &textOut); err != nil {
		if isNoTextError(err) {
			return failDocument(ctx, &status, input, "document contains no extractable text")
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	// Generation is never retried: a failed LLM call either means the user
	// must fix something (keys, quota) or a retry would just burn tokens on
	// the same malformed output.
	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	status.CurrentStep = "generate_deck"
	status.Steps[status.CurrentStep] = "processing"
	var deckOut activities.GenerateDeckOutput
	if err := workflow.ExecuteActivity(genCtx, "GenerateDeckActivity", activities.GenerateDeckInput{
		CollectionID: input.CollectionID,
		DocumentID:   status.DocumentID,
		Text:         textOut.Text,
		Options:      input.Options,
	}).Get(genCtx, &deckOut); err != nil {
		if reason, ok := actionableFailReason(err); ok {
			return failDocument(ctx, &status, input, reason)
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "persist_deck"
	status.Steps[status.CurrentStep] = "processing"
	var persistOut activities.PersistDeckOutput
	if err := workflow.ExecuteActivity(ctx, "PersistDeckActivity", activities.PersistDeckInput{
		CollectionID: input.CollectionID,
		DocumentID:   status.DocumentID,
		Cards:        deckOut.Cards,
		Append:       input.Append,
	}).Get(ctx, &persistOut); err != nil {
		return "", err
	}
	status.CardCount = persistOut.CardCount
	status.Steps[status.CurrentStep] = "done"

	if input.Summarize {
		status.CurrentStep = "summarize"
		status.Steps[status.CurrentStep] = "processing"
		var sumOut activities.SummarizeTextOutput
		if err := workflow.ExecuteActivity(genCtx, "SummarizeTextActivity", activities.SummarizeTextInput{
			CollectionID: input.CollectionID,
			Text:         textOut.Text,
		}).Get(genCtx, &sumOut); err != nil {
			if reason, ok := actionableFailReason(err); ok {
				return failDocument(ctx, &status, input, reason)
			}
			return "", err
		}
		if err := workflow.ExecuteActivity(ctx, "PersistSummaryActivity", activities.PersistSummaryInput{
			CollectionID:     input.CollectionID,
			Summary:          sumOut.Summary,
			InputWordCount:   sumOut.InputWordCount,
			SummaryWordCount: sumOut.SummaryWordCount,
		}).Get(ctx, nil); err != nil {
			return "", err
		}
		_ = workflow.ExecuteActivity(ctx, "WriteSummaryArtifactActivity", activities.WriteSummaryArtifactInput{
			CollectionID: input.CollectionID,
			DocumentID:   status.DocumentID,
			Summary:      sumOut.Summary,
		}).Get(ctx, nil)
		status.Steps[status.CurrentStep] = "done"
	}

	status.CurrentStep = "write_artifacts"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteDeckArtifactsActivity", activities.WriteDeckArtifactsInput{
		CollectionID: input.CollectionID,
		DocumentID:   status.DocumentID,
		Cards:        deckOut.Cards,
		ProcessingLog: map[string]any{
			"document_id":  status.DocumentID,
			"filename":     input.Filename,
			"provider":     deckOut.ProviderName,
			"card_count":   status.CardCount,
			"steps":        status.Steps,
			"generated_at": workflow.Now(ctx),
		},
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "mark_processed"
	if err := workflow.ExecuteActivity(ctx, "UpdateDocumentStatusActivity", activities.UpdateDocumentStatusInput{
		DocumentID:   status.DocumentID,
		CollectionID: input.CollectionID,
		Filename:     input.Filename,
		MediaType:    input.MediaType,
		Status:       "processed",
		CardCount:    status.CardCount,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.CurrentStep = "done"
	status.Status = "processed"
	return status.Status, nil
}

// DocumentSummarizeWorkflow summarizes one document without touching its
// flashcards.
func DocumentSummarizeWorkflow(ctx workflow.Context, input DocumentSummarizeInput) (string, error) {
	status := DocumentStatus{
		DocumentID:  input.DocumentID,
		Filename:    input.Filename,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetDocumentStatus, func() (DocumentStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	status.CurrentStep = "extract_text"
	status.Steps[status.CurrentStep] = "processing"
	var textOut activities.ExtractTextOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{DocumentPath: input.DocumentPath, MediaType: input.MediaType}).Get(ctx, &textOut); err != nil {
		if isNoTextError(err) {
			status.Status = "failed"
			status.FailReason = "document contains no extractable text"
			status.Steps[status.CurrentStep] = "failed"
			return status.Status, nil
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	status.CurrentStep = "summarize"
	status.Steps[status.CurrentStep] = "processing"
	var sumOut activities.SummarizeTextOutput
	if err := workflow.ExecuteActivity(genCtx, "SummarizeTextActivity", activities.SummarizeTextInput{
		CollectionID: input.CollectionID,
		Text:         textOut.Text,
	}).Get(genCtx, &sumOut); err != nil {
		if reason, ok := actionableFailReason(err); ok {
			status.Status = "failed"
			status.FailReason = reason
			status.Steps[status.CurrentStep] = "failed"
			return status.Status, nil
		}
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "persist_summary"
	if err := workflow.ExecuteActivity(ctx, "PersistSummaryActivity", activities.PersistSummaryInput{
		CollectionID:     input.CollectionID,
		Summary:          sumOut.Summary,
		InputWordCount:   sumOut.InputWordCount,
		SummaryWordCount: sumOut.SummaryWordCount,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	_ = workflow.ExecuteActivity(ctx, "WriteSummaryArtifactActivity", activities.WriteSummaryArtifactInput{
		CollectionID: input.CollectionID,
		DocumentID:   status.DocumentID,
		Summary:      sumOut.Summary,
	}).Get(ctx, nil)

	status.CurrentStep = "done"
	status.Status = "processed"
	return status.Status, nil
}

func failDocument(ctx workflow.Context, status *DocumentStatus, input DocumentProcessInput, reason string) (string, error) {
	status.Status = "failed"
	status.FailReason = reason
	status.Steps[status.CurrentStep] = "failed"
	_ = workflow.ExecuteActivity(ctx, "UpdateDocumentStatusActivity", activities.UpdateDocumentStatusInput{
		DocumentID:   status.DocumentID,
		CollectionID: input.CollectionID,
		Filename:     input.Filename,
		MediaType:    input.MediaType,
		Status:       "failed",
		FailReason:   reason,
	}).Get(ctx, nil)
	return status.Status, nil
}

func isNoTextError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no extractable text")
}

// actionableFailReason maps generation failures the user can fix to the
// message stored on the document. The failure kind travels in the activity
// error message, so matching is by kind prefix.
func actionableFailReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, string(generation.KindQuotaExceeded)):
		return "llm quota exceeded; check the provider billing and retry", true
	case strings.Contains(msg, string(generation.KindConfiguration)):
		return "llm provider is not configured; set the provider api key", true
	case strings.Contains(msg, string(generation.KindEmptyResponse)):
		return "llm returned no usable content for this document", true
	case strings.Contains(msg, string(generation.KindMalformedResponse)):
		return "llm returned output that could not be parsed", true
	default:
		return "", false
	}
}
