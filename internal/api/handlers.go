// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lute-crawl/internal/albums"
	"github.com/tomtom215/lute-crawl/internal/files"
	"github.com/tomtom215/lute-crawl/internal/models"
	"github.com/tomtom215/lute-crawl/internal/recommend"
	"github.com/tomtom215/lute-crawl/internal/validation"
)

// decodeJSONBody decodes a JSON request body into v, rejecting unknown
// fields so typos in client payloads surface as 400s rather than being
// silently ignored.
func decodeJSONBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// RecommendDefaults bounds a recommend request lacking an explicit count,
// and the per-axis weights applied when the caller doesn't override them.
type RecommendDefaults struct {
	Settings recommend.AssessmentSettings
	Count    int
}

// Handler holds every dependency the REST surface dispatches into. It is
// deliberately thin: all domain logic lives in the interactor/engine
// types it wraps (§4.3, §4.5, §4.7).
type Handler struct {
	files     *files.Interactor
	search    *albums.SearchIndex
	recommend *recommend.Engine
	defaults  RecommendDefaults
	log       zerolog.Logger
}

// NewHandler wires the HTTP layer over the ingestion, search, and
// recommendation interactors.
func NewHandler(filesInteractor *files.Interactor, search *albums.SearchIndex, engine *recommend.Engine, defaults RecommendDefaults, log zerolog.Logger) *Handler {
	return &Handler{
		files:     filesInteractor,
		search:    search,
		recommend: engine,
		defaults:  defaults,
		log:       log,
	}
}

// HealthCheck reports liveness. It does not touch Redis or BadgerDB: a
// dependency outage is visible through the affected endpoint's own error,
// not by failing the process health probe.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

func fileNameFromWildcard(r *http.Request) (models.FileName, error) {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		return "", ErrMissingFileName
	}
	return models.NewFileName(raw)
}

// ListFiles returns every saved file name.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	names, err := h.files.ListFiles(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]interface{}{"files": names})
}

// GetFileMetadata returns one file's metadata.
func (h *Handler) GetFileMetadata(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fileName, err := fileNameFromWildcard(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	meta, err := h.files.GetFileMetadata(r.Context(), fileName)
	if err != nil {
		h.respondDomainErr(rw, err)
		return
	}
	rw.Success(meta)
}

// GetFileContent streams back a file's stored content.
func (h *Handler) GetFileContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fileName, err := fileNameFromWildcard(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	content, err := h.files.GetFileContent(r.Context(), fileName)
	if err != nil {
		h.respondDomainErr(rw, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.log.Warn().Err(err).Str("file_name", fileName.String()).Msg("failed writing file content response")
	}
}

// PutFile saves the request body as fileName's content, upserting
// metadata and publishing FileSaved.
func (h *Handler) PutFile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fileName, err := fileNameFromWildcard(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	content, err := io.ReadAll(r.Body)
	if err != nil {
		rw.BadRequest("failed reading request body")
		return
	}
	meta, err := h.files.PutFile(r.Context(), fileName, content, nil)
	if err != nil {
		h.respondDomainErr(rw, err)
		return
	}
	rw.Success(meta)
}

// DeleteFile removes a file's metadata and content.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fileName, err := fileNameFromWildcard(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := h.files.DeleteFile(r.Context(), fileName); err != nil {
		h.respondDomainErr(rw, err)
		return
	}
	rw.NoContent()
}

// searchQueryRequest is the validated shape of SearchAlbums's query
// parameters (§4.5).
type searchQueryRequest struct {
	Text   string `validate:"omitempty"`
	Offset int    `validate:"min=0"`
	Limit  int    `validate:"min=1,max=1000"`
}

// SearchAlbums runs a filtered album search.
func (h *Handler) SearchAlbums(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit == 0 {
		limit = 50
	}
	req := searchQueryRequest{Text: r.URL.Query().Get("text"), Offset: offset, Limit: limit}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	query := &albums.SearchQuery{}
	if req.Text != "" {
		query.Text = &req.Text
	}
	if artist := r.URL.Query().Get("artist"); artist != "" {
		query.IncludeArtists = []string{artist}
	}

	result, err := h.search.Search(r.Context(), query, &albums.SearchPagination{Offset: req.Offset, Limit: req.Limit})
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.SuccessWithPagination(result.Albums, &PaginationMeta{
		Total:   int64(result.Total),
		Count:   len(result.Albums),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(result.Albums) < result.Total,
	})
}

// recommendRequest is the JSON body RecommendAlbums accepts.
type recommendRequest struct {
	Profile models.Profile `json:"profile" validate:"required"`
	Count   int            `json:"count" validate:"omitempty,min=1"`
}

// RecommendAlbums scores candidates against a listener profile via the
// Quantile-Rank Recommendation Engine (§4.7).
func (h *Handler) RecommendAlbums(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendRequest
	if err := decodeJSONBody(r, &req); err != nil {
		rw.BadRequest("invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = h.defaults.Count
	}
	if req.Count <= 0 {
		rw.BadRequest(ErrInvalidRecommendationCount.Error())
		return
	}

	profileFileNames := make([]models.FileName, 0, len(req.Profile.Plays))
	for fileName := range req.Profile.Plays {
		profileFileNames = append(profileFileNames, fileName)
	}
	profileAlbums, err := h.search.GetMany(r.Context(), profileFileNames)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	recs, err := h.recommend.Recommend(r.Context(), req.Profile, profileAlbums, h.defaults.Settings, recommend.RecommendationSettings{Count: req.Count})
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(map[string]interface{}{"recommendations": recs})
}

// respondDomainErr maps the shared sentinel error kinds (§7) onto HTTP
// status codes.
func (h *Handler) respondDomainErr(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		rw.BadRequest(err.Error())
	case errors.Is(err, models.ErrQueueFull), errors.Is(err, models.ErrDuplicate):
		rw.Conflict(err.Error())
	default:
		rw.DatabaseError(err)
	}
}
