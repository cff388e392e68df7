package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gotestbook/gotestbook/pkg/logger"
)

// CreateNoteRequest represents the request body for creating a note.
type CreateNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NoteResponse represents a note in API responses.
type NoteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NoteHandler handles the notes endpoints.
type NoteHandler struct {
	service NoteService
	metrics *Metrics
	log     *logger.Logger
}

// NewNoteHandler creates a new NoteHandler. metrics and log may be nil.
func NewNoteHandler(svc NoteService, m *Metrics, log *logger.Logger) *NoteHandler {
	if log == nil {
		log = logger.New(io.Discard, "info")
	}
	return &NoteHandler{service: svc, metrics: m, log: log}
}

// Create handles POST /api/v1/notes requests.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	note, err := h.service.Create(r.Context(), req.Title, req.Body)
	if err != nil {
		status, errResp := mapErrorToResponse(err)
		writeJSON(w, status, errResp)
		return
	}

	if h.metrics != nil {
		h.metrics.NoteCreated()
	}
	h.log.Info("note created",
		"note_id", note.ID,
		"request_id", GetRequestID(r.Context()),
	)

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// Get handles GET /api/v1/notes/{id} requests.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.service.Get(r.Context(), id)
	if err != nil {
		status, errResp := mapErrorToResponse(err)
		writeJSON(w, status, errResp)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// List handles GET /api/v1/notes requests.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(r.Context())
	if err != nil {
		status, errResp := mapErrorToResponse(err)
		writeJSON(w, status, errResp)
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, toNoteResponse(note))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/notes/{id} requests.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		status, errResp := mapErrorToResponse(err)
		writeJSON(w, status, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz requests.
func (h *NoteHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter assembles the API router with middleware. m and log may be nil;
// with a nil m no metrics middleware is installed.
func NewRouter(svc NoteService, m *Metrics, log *logger.Logger) *chi.Mux {
	h := NewNoteHandler(svc, m, log)

	r := chi.NewRouter()
	r.Use(RequestID())
	if m != nil {
		r.Use(m.Middleware())
	}

	r.Get("/healthz", h.Health)

	r.Post("/api/v1/notes", h.Create)
	r.Get("/api/v1/notes", h.List)
	r.Get("/api/v1/notes/{id}", h.Get)
	r.Delete("/api/v1/notes/{id}", h.Delete)

	return r
}

func toNoteResponse(note Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt.Format(time.RFC3339),
	}
}

// mapErrorToResponse maps service errors to HTTP status codes and error responses.
func mapErrorToResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "EMPTY_TITLE",
		}
	case errors.Is(err, ErrNoteNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
