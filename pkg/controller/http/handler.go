package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rpad300/godmode-sub015/pkg/domain/model"
	"github.com/rpad300/godmode-sub015/pkg/domain/model/config"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
	"github.com/rpad300/godmode-sub015/pkg/service/analysis"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
	"github.com/rpad300/godmode-sub015/pkg/utils/async"
	"github.com/rpad300/godmode-sub015/pkg/utils/errutil"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
	"github.com/rpad300/godmode-sub015/pkg/utils/safe"
)

// transcriptPayload is one raw transcript in a request body
type transcriptPayload struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func (p *transcriptPayload) toInput() usecase.TranscriptInput {
	return usecase.TranscriptInput{
		ID:       types.DocumentID(p.ID),
		Filename: p.Filename,
		Content:  p.Content,
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(r.Context(), w, data)
}

// resolvePerson looks up the person in the configuration, falling back to
// a person whose display name is the ID when no configuration is loaded.
func (s *Server) resolvePerson(personID types.PersonID) *config.Person {
	if s.profileConfig == nil {
		return nil
	}
	return s.profileConfig.Person(personID)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	personID := types.PersonID(chi.URLParam(r, "personID"))
	if err := personID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	person := s.resolvePerson(personID)
	if person == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("unknown person", goerr.V("personID", personID)), http.StatusNotFound)
		return
	}

	var req struct {
		Transcripts []transcriptPayload `json:"transcripts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if len(req.Transcripts) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New("transcripts are required"), http.StatusBadRequest)
		return
	}

	inputs := make([]usecase.TranscriptInput, 0, len(req.Transcripts))
	for _, t := range req.Transcripts {
		inputs = append(inputs, t.toInput())
	}

	results := s.uc.Extraction.ExtractAll(r.Context(), projectID, personID, person.Name, person.Aliases, inputs)

	type extractionSummary struct {
		DocumentID        string `json:"document_id"`
		Filename          string `json:"filename"`
		InterventionCount int    `json:"intervention_count"`
		TotalWordCount    int    `json:"total_word_count"`
	}
	resp := struct {
		Results []extractionSummary `json:"results"`
	}{
		Results: make([]extractionSummary, 0, len(results)),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, extractionSummary{
			DocumentID:        string(res.DocumentID),
			Filename:          res.Filename,
			InterventionCount: res.InterventionCount,
			TotalWordCount:    res.TotalWordCount,
		})
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	personID := types.PersonID(chi.URLParam(r, "personID"))
	if err := personID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	person := s.resolvePerson(personID)
	if person == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("unknown person", goerr.V("personID", personID)), http.StatusNotFound)
		return
	}

	var req struct {
		Transcripts []transcriptPayload `json:"transcripts"`
		MaxTokens   int                 `json:"max_tokens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if len(req.Transcripts) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New("transcripts are required"), http.StatusBadRequest)
		return
	}

	inputs := make([]usecase.TranscriptInput, 0, len(req.Transcripts))
	for _, t := range req.Transcripts {
		inputs = append(inputs, t.toInput())
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.maxTokens
	}

	opts := usecase.AnalyzeOption{
		ProjectID:   projectID,
		PersonID:    personID,
		PersonName:  person.Name,
		Aliases:     person.Aliases,
		Transcripts: inputs,
		Dimensions:  s.analysisDimensions(),
		Prompt:      s.analysisPrompt(),
		MaxTokens:   maxTokens,
	}

	// The LLM pass can take minutes; run it detached and let clients
	// observe completion via the runs endpoint.
	async.Dispatch(r.Context(), func(ctx context.Context) error {
		if _, err := s.uc.Analysis.Analyze(ctx, opts); err != nil {
			return goerr.Wrap(err, "background analysis failed",
				goerr.V("projectID", projectID),
				goerr.V("personID", personID),
			)
		}
		return nil
	})

	logging.From(r.Context()).Info("analysis accepted",
		"projectID", projectID,
		"personID", personID,
		"transcripts", len(inputs),
	)

	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) analysisDimensions() []analysis.Dimension {
	if s.profileConfig == nil {
		return nil
	}
	dims := make([]analysis.Dimension, 0, len(s.profileConfig.Dimensions))
	for _, d := range s.profileConfig.Dimensions {
		dims = append(dims, analysis.Dimension{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		})
	}
	return dims
}

func (s *Server) analysisPrompt() string {
	if s.profileConfig == nil {
		return ""
	}
	return s.profileConfig.Prompt
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	personID := types.PersonID(chi.URLParam(r, "personID"))
	if err := personID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	profile, err := s.uc.Analysis.GetProfile(r.Context(), projectID, personID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, profileResponse(profile))
}

func profileResponse(p *model.Profile) map[string]any {
	return map[string]any{
		"person_id":        p.PersonID,
		"person_name":      p.PersonName,
		"confidence_level": p.ConfidenceLevel,
		"dimensions":       p.Dimensions,
		"created_at":       p.CreatedAt,
		"updated_at":       p.UpdatedAt,
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	personID := types.PersonID(chi.URLParam(r, "personID"))
	if err := personID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	runs, err := s.uc.Analysis.ListRuns(r.Context(), projectID, personID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleListPersonEvidence(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	personID := types.PersonID(chi.URLParam(r, "personID"))
	if err := personID.Validate(); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	entries, err := s.uc.Analysis.ListPersonEvidence(r.Context(), projectID, personID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"evidence": entries})
}

func (s *Server) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	entries, total, err := s.uc.Analysis.ListEvidence(r.Context(), projectID, limit, offset)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"evidence":    entries,
		"total_count": total,
		"limit":       limit,
		"offset":      offset,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
