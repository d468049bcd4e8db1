package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"

	"cardforge/internal/config"
	"cardforge/internal/export"
	"cardforge/internal/extract"
	"cardforge/internal/generation"
	"cardforge/internal/models"
	"cardforge/internal/prompts"
	"cardforge/internal/providers"
	"cardforge/internal/storage"
	"cardforge/internal/util"
	"cardforge/internal/workflows"
)

type Server struct {
	cfg            config.Config
	db             *storage.DB
	collectionRepo *storage.CollectionRepo
	documentRepo   *storage.DocumentRepo
	flashcardRepo  *storage.FlashcardRepo
	summaryRepo    *storage.SummaryRepo
	providers      *providers.Manager
	assembler      *generation.Assembler
	reducer        *generation.Reducer
	temporal       tclient.Client
	log            zerolog.Logger
}

func NewServer(cfg config.Config, log zerolog.Logger) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	pm, err := providers.NewManager(cfg)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	llm, llmRef := pm.ActiveLLMProvider()
	log.Info().Str("llm_provider", llmRef.Name).Msg("llm provider selected")
	client := generation.NewClient(llm, log)
	return &Server{
		cfg:            cfg,
		db:             db,
		collectionRepo: storage.NewCollectionRepo(db),
		documentRepo:   storage.NewDocumentRepo(db),
		flashcardRepo:  storage.NewFlashcardRepo(db),
		summaryRepo:    storage.NewSummaryRepo(db),
		providers:      pm,
		assembler:      generation.NewAssembler(client, cfg.FlashcardChunkSize, log),
		reducer:        generation.NewReducer(client, cfg.SummaryChunkSize, log),
		temporal:       tc,
		log:            log,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/providers", s.handleProviders)
	mux.HandleFunc("/collections", s.handleCollections)
	mux.HandleFunc("/collections/", s.handleCollectionsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	type providerStatus struct {
		Name       string `json:"name"`
		KeyAlias   string `json:"key_alias,omitempty"`
		Configured bool   `json:"configured"`
	}
	out := make([]providerStatus, 0, s.providers.LLMCount())
	for i := 0; i < s.providers.LLMCount(); i++ {
		p, ref := s.providers.LLMProviderByIndex(i)
		out = append(out, providerStatus{Name: ref.Name, KeyAlias: ref.KeyAlias, Configured: p.Configured()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		collections, err := s.collectionRepo.ListCollections(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"collections": collections})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("name is required"))
			return
		}

		collectionID := uuid.NewString()
		if err := s.collectionRepo.CreateCollection(r.Context(), models.Collection{CollectionID: collectionID, Name: req.Name}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := util.EnsureDir(filepath.Join(s.cfg.DataInRoot, collectionID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := util.EnsureDir(filepath.Join(s.cfg.DataOutRoot, collectionID)); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"collection_id": collectionID, "name": req.Name})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleCollectionsScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/collections/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	collectionID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			c, err := s.collectionRepo.GetCollection(r.Context(), collectionID)
			if err != nil {
				writeErr(w, http.StatusNotFound, err)
				return
			}
			writeJSON(w, http.StatusOK, c)
		case http.MethodDelete:
			if err := s.collectionRepo.DeleteCollection(r.Context(), collectionID); err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"deleted": collectionID})
		default:
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		}
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "upload":
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleUpload(w, r, collectionID)
	case len(parts) == 2 && parts[1] == "generate":
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleGenerateFromText(w, r, collectionID)
	case len(parts) == 2 && parts[1] == "summarize":
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleSummarizeText(w, r, collectionID)
	case len(parts) == 2 && parts[1] == "documents":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		docs, err := s.documentRepo.ListDocumentsByCollection(r.Context(), collectionID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
	case len(parts) == 4 && parts[1] == "documents" && parts[3] == "progress":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleDocumentProgress(w, r, collectionID, parts[2])
	case len(parts) == 4 && parts[1] == "documents" && parts[3] == "summarize":
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleDocumentSummarize(w, r, collectionID, parts[2])
	case len(parts) == 2 && parts[1] == "flashcards":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		cards, err := s.flashcardRepo.ListFlashcardsByCollection(r.Context(), collectionID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards, "card_count": len(cards)})
	case len(parts) == 2 && parts[1] == "export":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleExport(w, r, collectionID)
	case len(parts) == 2 && parts[1] == "summary":
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		summary, ok, err := s.summaryRepo.GetSummary(r.Context(), collectionID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, fmt.Errorf("no summary for collection"))
			return
		}
		writeJSON(w, http.StatusOK, summary)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, collectionID string) {
	if err := r.ParseMultipartForm(128 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		if single, ok := firstSingleFile(r.MultipartForm.File); ok {
			files = append(files, single)
		}
	}
	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	inDir := filepath.Join(s.cfg.DataInRoot, collectionID)
	if err := util.EnsureDir(inDir); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	opts := optionsFromForm(r)
	appendCards := formBool(r.FormValue("append"), false)
	summarize := formBool(r.FormValue("summarize"), false)

	type uploadResult struct {
		Filename   string `json:"filename"`
		DocumentID string `json:"document_id"`
		WorkflowID string `json:"workflow_id"`
	}
	out := make([]uploadResult, 0, len(files))

	for _, fh := range files {
		mediaType, ok := mediaTypeForFilename(fh.Filename)
		if !ok {
			continue
		}
		documentID, savedPath, err := saveUploadedFile(inDir, fh)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := s.documentRepo.UpsertDocument(r.Context(), models.Document{
			DocumentID:   documentID,
			CollectionID: collectionID,
			Filename:     filepath.Base(savedPath),
			MediaType:    mediaType,
			Status:       "pending",
		}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}

		wfID := "doc-" + collectionID + "-" + documentID
		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                                       wfID,
			TaskQueue:                                s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			WorkflowExecutionErrorWhenAlreadyStarted: true,
		}, workflows.DocumentProcessWorkflow, workflows.DocumentProcessInput{
			CollectionID: collectionID,
			DocumentID:   documentID,
			DocumentPath: savedPath,
			Filename:     filepath.Base(savedPath),
			MediaType:    mediaType,
			Options:      opts,
			Append:       appendCards,
			Summarize:    summarize,
		})
		if err != nil {
			writeErr(w, http.StatusConflict, err)
			return
		}
		s.log.Info().Str("collection_id", collectionID).Str("document_id", documentID).Str("workflow_id", we.GetID()).Msg("document processing started")
		out = append(out, uploadResult{Filename: filepath.Base(savedPath), DocumentID: documentID, WorkflowID: we.GetID()})
	}
	if len(out) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no supported files provided"))
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"uploaded": out})
}

// handleGenerateFromText runs the pipeline synchronously on pasted text.
// Documents go through Temporal; raw text is short enough to answer inline.
func (s *Server) handleGenerateFromText(w http.ResponseWriter, r *http.Request, collectionID string) {
	var req struct {
		Text                  string `json:"text"`
		Provider              string `json:"provider"`
		Append                bool   `json:"append"`
		GenerateDefinitions   *bool  `json:"generate_definitions"`
		GenerateConcepts      *bool  `json:"generate_concepts"`
		IncludeMultipleChoice *bool  `json:"include_multiple_choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	text := util.SanitizeText(req.Text)
	words := util.CountWords(text)
	if words == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	if words > s.cfg.MaxInputWords {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("text exceeds the %d word limit", s.cfg.MaxInputWords))
		return
	}

	opts := prompts.DefaultOptions()
	if req.GenerateDefinitions != nil {
		opts.GenerateDefinitions = *req.GenerateDefinitions
	}
	if req.GenerateConcepts != nil {
		opts.GenerateConcepts = *req.GenerateConcepts
	}
	if req.IncludeMultipleChoice != nil {
		opts.IncludeMultipleChoice = *req.IncludeMultipleChoice
	}

	asm := s.assembler
	if req.Provider != "" {
		p, _, ok := s.providers.FindLLMProviderByName(req.Provider)
		if !ok {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("unknown provider: %s", req.Provider))
			return
		}
		asm = generation.NewAssembler(generation.NewClient(p, s.log), s.cfg.FlashcardChunkSize, s.log)
	}

	candidates, err := asm.BuildDeck(r.Context(), text, opts)
	if err != nil {
		writeGenerationErr(w, err)
		return
	}

	cards := make([]models.Flashcard, 0, len(candidates))
	for i, c := range candidates {
		cards = append(cards, models.Flashcard{
			FlashcardID:   uuid.NewString(),
			CollectionID:  collectionID,
			Position:      i,
			Question:      c.Question,
			CorrectAnswer: c.CorrectAnswer,
			Options:       c.Options,
		})
	}
	if req.Append {
		err = s.flashcardRepo.AppendFlashcards(r.Context(), collectionID, cards)
	} else {
		err = s.flashcardRepo.ReplaceFlashcards(r.Context(), collectionID, cards)
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards, "card_count": len(cards)})
}

func (s *Server) handleSummarizeText(w http.ResponseWriter, r *http.Request, collectionID string) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	text := util.SanitizeText(req.Text)
	words := util.CountWords(text)
	if words == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	if words > s.cfg.MaxInputWords {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("text exceeds the %d word limit", s.cfg.MaxInputWords))
		return
	}

	summary, err := s.reducer.Summarize(r.Context(), text)
	if err != nil {
		writeGenerationErr(w, err)
		return
	}
	record := models.Summary{
		SummaryID:        uuid.NewString(),
		CollectionID:     collectionID,
		Content:          summary,
		InputWordCount:   words,
		SummaryWordCount: util.CountWords(summary),
	}
	if err := s.summaryRepo.UpsertSummary(r.Context(), record); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDocumentProgress(w http.ResponseWriter, r *http.Request, collectionID, documentID string) {
	var status workflows.DocumentStatus
	resp, err := s.temporal.QueryWorkflow(r.Context(), "doc-"+collectionID+"-"+documentID, "", workflows.QueryGetDocumentStatus)
	if err != nil {
		// Fall back to the stored row when no workflow is queryable.
		doc, dErr := s.documentRepo.GetDocument(r.Context(), collectionID, documentID)
		if dErr != nil {
			writeErr(w, http.StatusNotFound, dErr)
			return
		}
		writeJSON(w, http.StatusOK, workflows.DocumentStatus{
			DocumentID: doc.DocumentID,
			Filename:   doc.Filename,
			Status:     doc.Status,
			FailReason: doc.FailReason,
			CardCount:  doc.CardCount,
		})
		return
	}
	if err := resp.Get(&status); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDocumentSummarize(w http.ResponseWriter, r *http.Request, collectionID, documentID string) {
	doc, err := s.documentRepo.GetDocument(r.Context(), collectionID, documentID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	path := util.SafeJoin(filepath.Join(s.cfg.DataInRoot, collectionID), doc.Filename)
	wfID := "summarize-" + collectionID + "-" + documentID
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       wfID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.DocumentSummarizeWorkflow, workflows.DocumentSummarizeInput{
		CollectionID: collectionID,
		DocumentID:   documentID,
		DocumentPath: path,
		Filename:     doc.Filename,
		MediaType:    doc.MediaType,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, collectionID string) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	collection, err := s.collectionRepo.GetCollection(r.Context(), collectionID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	cards, err := s.flashcardRepo.ListFlashcardsByCollection(r.Context(), collectionID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(collection.Name)))
	if err := export.Write(w, format, cards); err != nil {
		s.log.Error().Err(err).Str("collection_id", collectionID).Msg("export write failed")
	}
}

func mediaTypeForFilename(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extract.MediaTypePDF, true
	case ".doc":
		return extract.MediaTypeDoc, true
	case ".docx":
		return extract.MediaTypeDocx, true
	default:
		return "", false
	}
}

func optionsFromForm(r *http.Request) prompts.Options {
	opts := prompts.DefaultOptions()
	opts.GenerateDefinitions = formBool(r.FormValue("generate_definitions"), opts.GenerateDefinitions)
	opts.GenerateConcepts = formBool(r.FormValue("generate_concepts"), opts.GenerateConcepts)
	opts.IncludeMultipleChoice = formBool(r.FormValue("include_multiple_choice"), opts.IncludeMultipleChoice)
	return opts
}

func formBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func saveUploadedFile(dstDir string, fh *multipart.FileHeader) (documentID, path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(dstDir, "upload-*")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
	}()

	documentID, err = util.SHA256HexFromReader(io.TeeReader(src, tmp))
	if err != nil {
		return "", "", fmt.Errorf("write upload: %w", err)
	}

	finalPath := util.SafeJoin(dstDir, fh.Filename)
	if err := tmp.Close(); err != nil {
		return "", "", err
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("atomic move upload: %w", err)
	}
	return documentID, finalPath, nil
}

func firstSingleFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeGenerationErr maps pipeline failure kinds onto HTTP responses. Only
// configuration and quota failures carry an actionable message; the rest stay
// generic so upstream error text never reaches clients.
func writeGenerationErr(w http.ResponseWriter, err error) {
	switch generation.KindOf(err) {
	case generation.KindConfiguration:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]any{
			"code":    "CF-LLM-4001",
			"message": "No LLM provider is configured. Set the provider API key and retry.",
		}})
	case generation.KindQuotaExceeded:
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": map[string]any{
			"code":    "CF-LLM-4029",
			"message": "The LLM provider quota is exhausted. Check the provider billing and retry.",
		}})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": map[string]any{
			"code":    "CF-LLM-5020",
			"message": "Flashcard generation failed. Please retry.",
		}})
	}
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "CF-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "CF-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "CF-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "CF-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "CF-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "CF-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "CF-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "CF-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusBadGateway:
		code = "CF-API-5020"
		msg = "Upstream provider unavailable. Retry shortly."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "name is required"):
			msg = "Collection name is required."
		case strings.Contains(low, "text is required"):
			msg = "Input text is required."
		case strings.Contains(low, "word limit"):
			msg = "Input text exceeds the word limit. Upload it as a document instead."
		case strings.Contains(low, "no files provided"):
			msg = "No files were provided."
		case strings.Contains(low, "no supported files provided"):
			msg = "None of the files are supported. Upload PDF or Word documents."
		case strings.Contains(low, "unsupported export format"):
			msg = "Unsupported export format. Use json, csv, or anki."
		case strings.Contains(low, "unknown provider"):
			msg = "Unknown provider. List the configured providers at /providers."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
