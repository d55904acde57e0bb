// Package server implements the HTTP key-value endpoint the cart is synced
// to, following the Firebase Realtime Database REST conventions
// (PUT/GET/DELETE on /<key>.json).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cristianoliveira/shopcart/internal/logging"
	"github.com/cristianoliveira/shopcart/internal/remote"
	"github.com/cristianoliveira/shopcart/internal/storage/sqlite"
	"github.com/google/uuid"
)

// maxBodyBytes bounds accepted documents.
const maxBodyBytes = 1 << 20

// DocumentStore persists JSON documents. *sqlite.Storage implements it.
type DocumentStore interface {
	Put(ctx context.Context, key string, body []byte) error
	Get(ctx context.Context, key string) (sqlite.Document, error)
	Delete(ctx context.Context, key string) error
}

// Handler serves documents from a DocumentStore.
type Handler struct {
	store  DocumentStore
	logger logging.Logger
}

// NewHandler creates a handler backed by store.
func NewHandler(store DocumentStore, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Noop()
	}
	return &Handler{store: store, logger: logger}
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := r.Header.Get(remote.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(remote.RequestIDHeader, requestID)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	key, ok := documentKey(r.URL.Path)
	switch {
	case !ok:
		writeError(rec, http.StatusNotFound, "path must be /<key>.json")
	case r.Method == http.MethodGet:
		h.get(rec, r, key)
	case r.Method == http.MethodPut:
		h.put(rec, r, key)
	case r.Method == http.MethodDelete:
		h.delete(rec, r, key)
	default:
		rec.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(rec, http.StatusMethodNotAllowed, "method not allowed")
	}

	h.logger.Info("request",
		"method", r.Method,
		"key", key,
		"status", rec.status,
		"request_id", requestID,
		"duration", time.Since(start),
	)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, key string) {
	doc, err := h.store.Get(r.Context(), key)
	if errors.Is(err, sqlite.ErrKeyNotFound) {
		writeJSON(w, http.StatusOK, []byte("null"))
		return
	}
	if err != nil {
		h.storageError(w, "get document", key, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Body)
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request, key string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return
		}
		h.logger.Warn("read body", "key", key, "error", err)
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.store.Put(r.Context(), key, body); err != nil {
		h.storageError(w, "put document", key, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, key string) {
	if err := h.store.Delete(r.Context(), key); err != nil {
		h.storageError(w, "delete document", key, err)
		return
	}
	writeJSON(w, http.StatusOK, []byte("null"))
}

func (h *Handler) storageError(w http.ResponseWriter, op, key string, err error) {
	if errors.Is(err, sqlite.ErrInvalidKey) {
		writeError(w, http.StatusBadRequest, "invalid key")
		return
	}
	h.logger.Error(op, "key", key, "error", err)
	writeError(w, http.StatusInternalServerError, "storage error")
}

// documentKey extracts "cart" from "/cart.json" and "users/1/cart" from
// "/users/1/cart.json".
func documentKey(path string) (string, bool) {
	key := strings.TrimPrefix(path, "/")
	if !strings.HasSuffix(key, ".json") {
		return "", false
	}
	key = strings.TrimSuffix(key, ".json")
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	writeJSON(w, status, body)
}
