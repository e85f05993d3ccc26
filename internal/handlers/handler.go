package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/blogverse-backend/internal/services"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

// storeTimeout bounds every store call made while serving a request.
const storeTimeout = 5 * time.Second

const maxJSONBodySize = 1 << 20 // 1MB

// Handler serves the /api/v1 routes. All dependencies are process-scoped and injected.
type Handler struct {
	store    store.Store
	tokens   *services.TokenService
	denylist services.TokenDenylist
	uploader services.ImageUploader // nil when uploads are not configured
	now      func() time.Time
}

type Option func(*Handler)

// WithDenylist makes logout revoke the current token.
func WithDenylist(d services.TokenDenylist) Option {
	return func(h *Handler) { h.denylist = d }
}

// WithImageUploader enables POST /upload-image.
func WithImageUploader(u services.ImageUploader) Option {
	return func(h *Handler) { h.uploader = u }
}

// WithClock replaces time.Now for server-stamped timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(st store.Store, tokens *services.TokenService, opts ...Option) *Handler {
	h := &Handler{
		store:    st,
		tokens:   tokens,
		denylist: services.NoopDenylist{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Denylist is shared with the auth gate so logout and verification agree.
func (h *Handler) Denylist() services.TokenDenylist {
	return h.denylist
}

type messageResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeStoreError maps store errors to responses. Malformed ids are the caller's fault;
// everything else is a generic server error.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrInvalidID) {
		writeMessage(w, http.StatusBadRequest, "Invalid id")
		return
	}
	log.Printf("%s %s: store failure: %v", r.Method, r.URL.Path, err)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}
