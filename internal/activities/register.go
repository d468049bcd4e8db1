package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ComputeDocumentIDActivity)
	w.RegisterActivity(a.ExtractTextActivity)
	w.RegisterActivity(a.GenerateDeckActivity)
	w.RegisterActivity(a.SummarizeTextActivity)
	w.RegisterActivity(a.PersistDeckActivity)
	w.RegisterActivity(a.PersistSummaryActivity)
	w.RegisterActivity(a.UpdateDocumentStatusActivity)
	w.RegisterActivity(a.WriteDeckArtifactsActivity)
	w.RegisterActivity(a.WriteSummaryArtifactActivity)
}
