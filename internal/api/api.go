// Package api serves the word list over HTTP for remote clients.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordsheet/internal/domain"
	"wordsheet/internal/service"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// WordService is what the handlers need from the word list
type WordService interface {
	GetAll() ([]domain.WordEntry, error)
	Create(word, meaning string, index *int) (*domain.WordEntry, error)
	Update(id string, word, meaning *string) (*domain.WordEntry, error)
	Delete(id string) error
	DeleteAll() error
	ReorderAll(entries []domain.WordEntry) error
}

// Handler handles the /api/words routes
type Handler struct {
	words  WordService
	logger *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(words WordService, logger *zap.Logger) *Handler {
	return &Handler{words: words, logger: logger}
}

type createRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Index   *int   `json:"index"`
}

type updateRequest struct {
	Word    *string `json:"word"`
	Meaning *string `json:"meaning"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Routes registers every route on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/words", h.GetWords)
	mux.HandleFunc("POST /api/words", h.CreateWord)
	mux.HandleFunc("PUT /api/words", h.ReorderWords)
	mux.HandleFunc("DELETE /api/words", h.DeleteAllWords)
	mux.HandleFunc("PATCH /api/words/{id}", h.UpdateWord)
	mux.HandleFunc("DELETE /api/words/{id}", h.DeleteWord)

	return mux
}

// NewServer wraps the routes with request logging and CORS
func NewServer(h *Handler, allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin"},
		MaxAge:         86400,
	})
	return c.Handler(h.logRequests(h.Routes()))
}

// GetWords returns the whole list
func (h *Handler) GetWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.words.GetAll()
	if err != nil {
		h.internalError(w, "Failed to get words", err)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// CreateWord adds a word, at "index" when given
func (h *Handler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	entry, err := h.words.Create(req.Word, req.Meaning, req.Index)
	if err != nil {
		h.internalError(w, "Failed to create word", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateWord changes the fields present in the body
func (h *Handler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	entry, err := h.words.Update(id, req.Word, req.Meaning)
	if errors.Is(err, service.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.internalError(w, "Failed to update word", err)
		return
	}
	if entry == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteWord removes one word. Unknown ids succeed.
func (h *Handler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := h.words.Delete(r.PathValue("id")); err != nil {
		h.internalError(w, "Failed to delete word", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// DeleteAllWords clears the list
func (h *Handler) DeleteAllWords(w http.ResponseWriter, r *http.Request) {
	if err := h.words.DeleteAll(); err != nil {
		h.internalError(w, "Failed to delete words", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// ReorderWords replaces the list with the body
func (h *Handler) ReorderWords(w http.ResponseWriter, r *http.Request) {
	var entries []domain.WordEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	err := h.words.ReorderAll(entries)
	if errors.Is(err, service.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.internalError(w, "Failed to reorder words", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
