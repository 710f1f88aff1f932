package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/loomui/loomui/pkg/document"
	"github.com/loomui/loomui/pkg/errors"
	"github.com/loomui/loomui/pkg/layout"
	"github.com/loomui/loomui/pkg/pipeline"
	"github.com/loomui/loomui/pkg/store"
)

// maxDocumentSize bounds request bodies to keep hostile payloads out.
const maxDocumentSize = 1 << 20 // 1 MiB

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	Document json.RawMessage `json:"document"`
	Width    float64         `json:"width,omitempty"`
	Height   float64         `json:"height,omitempty"`
	Format   string          `json:"format,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

// renderResponse is returned for the json format; other formats stream the
// artifact bytes directly.
type renderResponse struct {
	Snapshot    layout.Snapshot     `json:"snapshot"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty"`
	Cached      bool                `json:"cached"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}
	if len(req.Document) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "document is required")
		return
	}

	opts := pipeline.Options{
		Document: req.Document,
		Width:    req.Width,
		Height:   req.Height,
		Format:   req.Format,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	}
	if opts.Format == "" {
		opts.Format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	s.writeResult(w, result, opts.Format)
}

func (s *Server) handleCreateScreen(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocumentBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	id, err := store.Save(r.Context(), s.store, doc)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handlePutScreen(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocumentBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.Put(r.Context(), id, doc); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleGetScreen(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleListScreens(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"screens": ids})
}

func (s *Server) handleDeleteScreen(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScreenLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		ScreenID: chi.URLParam(r, "id"),
		Width:    queryFloat(q.Get("width")),
		Height:   queryFloat(q.Get("height")),
		Format:   q.Get("format"),
		Refresh:  q.Get("refresh") == "true",
		Logger:   s.logger,
	}
	if opts.Format == "" {
		opts.Format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	s.writeResult(w, result, opts.Format)
}

// =============================================================================
// Response Helpers
// =============================================================================

// writeResult serves a pipeline result: structured JSON for the json format,
// raw artifact bytes otherwise.
func (s *Server) writeResult(w http.ResponseWriter, result *pipeline.Result, format string) {
	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifact)
	case pipeline.FormatTerm:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifact)
	default:
		writeJSON(w, http.StatusOK, renderResponse{
			Snapshot:    result.Snapshot,
			Diagnostics: result.Diagnostics,
			Cached:      result.CacheInfo.LayoutHit,
		})
	}
}

// writePipelineError maps pipeline failures to HTTP statuses. Document
// errors are the client's fault; everything else is a 500.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := http.StatusInternalServerError
	switch {
	case code.IsDocument(), code == errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case stderrors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		code = errors.ErrCodeNotFound
	case stderrors.Is(err, store.ErrInvalidID):
		status = http.StatusBadRequest
		code = errors.ErrCodeInvalidInput
	}
	s.writeError(w, status, code, errors.UserMessage(err))
}

// writeStoreError maps store failures to HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		s.writeError(w, http.StatusNotFound, errors.ErrCodeNotFound, "screen not found")
	case stderrors.Is(err, store.ErrInvalidID):
		s.writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: message,
	}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxDocumentSize))
	return dec.Decode(v)
}

// readDocumentBody reads a raw document body and rejects anything that does
// not parse, so the store only ever holds resolvable screens.
func readDocumentBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		return nil, err
	}
	if _, err := document.Parse(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func queryFloat(s string) float64 {
	var f float64
	if s == "" {
		return 0
	}
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return 0
	}
	return f
}
