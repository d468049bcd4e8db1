package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"cardforge/internal/activities"
	"cardforge/internal/generation"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func newProcessEnv() *testsuite.TestWorkflowEnvironment {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DocumentProcessWorkflow)
	registerActivityName(env, "ComputeDocumentIDActivity", func(context.Context, activities.ComputeDocumentIDInput) (activities.ComputeDocumentIDOutput, error) {
		return activities.ComputeDocumentIDOutput{}, nil
	})
	registerActivityName(env, "UpdateDocumentStatusActivity", func(context.Context, activities.UpdateDocumentStatusInput) error { return nil })
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})
	registerActivityName(env, "GenerateDeckActivity", func(context.Context, activities.GenerateDeckInput) (activities.GenerateDeckOutput, error) {
		return activities.GenerateDeckOutput{}, nil
	})
	registerActivityName(env, "PersistDeckActivity", func(context.Context, activities.PersistDeckInput) (activities.PersistDeckOutput, error) {
		return activities.PersistDeckOutput{}, nil
	})
	registerActivityName(env, "WriteDeckArtifactsActivity", func(context.Context, activities.WriteDeckArtifactsInput) error { return nil })
	return env
}

func sampleDeck() []generation.Candidate {
	return []generation.Candidate{{
		Question:      "What is chlorophyll for?",
		CorrectAnswer: "Absorbing light",
		Options:       []string{"Absorbing light", "Storing water", "Root growth", "Pollination"},
	}}
}

func TestDocumentProcessWorkflowSuccess(t *testing.T) {
	env := newProcessEnv()

	env.OnActivity("ComputeDocumentIDActivity", mock.Anything, activities.ComputeDocumentIDInput{DocumentPath: "/tmp/doc.pdf"}).Return(activities.ComputeDocumentIDOutput{DocumentID: "doc123"}, nil)
	env.OnActivity("UpdateDocumentStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{Text: "plant biology text"}, nil)
	env.OnActivity("GenerateDeckActivity", mock.Anything, mock.Anything).Return(activities.GenerateDeckOutput{Cards: sampleDeck(), ProviderName: "mock"}, nil)
	env.OnActivity("PersistDeckActivity", mock.Anything, mock.Anything).Return(activities.PersistDeckOutput{CardCount: 1}, nil)
	var artifacts activities.WriteDeckArtifactsInput
	env.OnActivity("WriteDeckArtifactsActivity", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		artifacts = args.Get(1).(activities.WriteDeckArtifactsInput)
	}).Return(nil)

	env.ExecuteWorkflow(DocumentProcessWorkflow, DocumentProcessInput{
		CollectionID: "col1",
		DocumentPath: "/tmp/doc.pdf",
		Filename:     "doc.pdf",
		MediaType:    "application/pdf",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "processed", out)
	require.Equal(t, "mock", artifacts.ProcessingLog["provider"])
}

func TestDocumentProcessWorkflowNoTextFailsGracefully(t *testing.T) {
	env := newProcessEnv()

	env.OnActivity("ComputeDocumentIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeDocumentIDOutput{DocumentID: "doc123"}, nil)
	env.OnActivity("UpdateDocumentStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{}, errors.New("no extractable text found in document"))

	env.ExecuteWorkflow(DocumentProcessWorkflow, DocumentProcessInput{
		CollectionID: "col1",
		DocumentPath: "/tmp/doc.pdf",
		Filename:     "doc.pdf",
		MediaType:    "application/pdf",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

func TestDocumentProcessWorkflowQuotaFailsGracefully(t *testing.T) {
	env := newProcessEnv()

	env.OnActivity("ComputeDocumentIDActivity", mock.Anything, mock.Anything).Return(activities.ComputeDocumentIDOutput{DocumentID: "doc123"}, nil)
	env.OnActivity("UpdateDocumentStatusActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{Text: "plant biology text"}, nil)
	env.OnActivity("GenerateDeckActivity", mock.Anything, mock.Anything).Return(activities.GenerateDeckOutput{}, errors.New("quota_exceeded: openai generate error 429: You exceeded your current quota"))

	env.ExecuteWorkflow(DocumentProcessWorkflow, DocumentProcessInput{
		CollectionID: "col1",
		DocumentPath: "/tmp/doc.pdf",
		Filename:     "doc.pdf",
		MediaType:    "application/pdf",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)

	v, err := env.QueryWorkflow(QueryGetDocumentStatus)
	require.NoError(t, err)
	var status DocumentStatus
	require.NoError(t, v.Get(&status))
	require.Contains(t, status.FailReason, "quota")
}

func TestDocumentSummarizeWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(DocumentSummarizeWorkflow)
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})
	registerActivityName(env, "SummarizeTextActivity", func(context.Context, activities.SummarizeTextInput) (activities.SummarizeTextOutput, error) {
		return activities.SummarizeTextOutput{}, nil
	})
	registerActivityName(env, "PersistSummaryActivity", func(context.Context, activities.PersistSummaryInput) error { return nil })
	registerActivityName(env, "WriteSummaryArtifactActivity", func(context.Context, activities.WriteSummaryArtifactInput) error { return nil })

	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).Return(activities.ExtractTextOutput{Text: "a long document"}, nil)
	env.OnActivity("SummarizeTextActivity", mock.Anything, mock.Anything).Return(activities.SummarizeTextOutput{Summary: "short", InputWordCount: 3, SummaryWordCount: 1}, nil)
	env.OnActivity("PersistSummaryActivity", mock.Anything, mock.Anything).Return(nil)
	env.OnActivity("WriteSummaryArtifactActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(DocumentSummarizeWorkflow, DocumentSummarizeInput{
		CollectionID: "col1",
		DocumentID:   "doc123",
		DocumentPath: "/tmp/doc.pdf",
		Filename:     "doc.pdf",
		MediaType:    "application/pdf",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "processed", out)
}
