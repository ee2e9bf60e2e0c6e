// Package api exposes the application tracker's REST surface: list, create,
// update, and delete over the applications collection.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"apptrack/internal/storage"
	"apptrack/internal/tracker"
)

const maxRequestBodySize = 1 << 20 // 1MB

// NewHandler returns the HTTP handler serving the tracker API. Every failure
// is turned into a status-coded JSON envelope; a bad request never takes the
// process down.
func NewHandler(store *storage.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", handleHealth)

	r.Route("/api/applications", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store))
		r.Put("/{id}", handleUpdate(store))
		r.Delete("/{id}", handleDelete(store))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleList(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.ListApplications()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list applications: %v", err)
			return
		}
		if records == nil {
			records = []tracker.Record{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

func handleCreate(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var patch tracker.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpError(w, http.StatusBadRequest, "validation_error", "invalid request body: %v", err)
			return
		}

		if patch.Company == nil || *patch.Company == "" {
			httpError(w, http.StatusBadRequest, "validation_error", "company is required")
			return
		}
		if patch.Role == nil || *patch.Role == "" {
			httpError(w, http.StatusBadRequest, "validation_error", "role is required")
			return
		}
		if err := validateEnums(patch); err != nil {
			httpError(w, http.StatusBadRequest, "validation_error", "%v", err)
			return
		}

		rec := tracker.Record{
			Type:   tracker.TypeJob,
			Status: tracker.StatusSaved,
		}
		patch.Apply(&rec)

		stored, err := store.CreateApplication(rec)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to create application: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(stored)
	}
}

func handleUpdate(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var patch tracker.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			httpError(w, http.StatusBadRequest, "validation_error", "invalid request body: %v", err)
			return
		}
		if err := validateEnums(patch); err != nil {
			httpError(w, http.StatusBadRequest, "validation_error", "%v", err)
			return
		}

		updated, err := store.UpdateApplication(id, patch)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "Application not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update application: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func handleDelete(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := store.DeleteApplication(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "Application not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete application: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Deleted successfully"})
	}
}

// validateEnums checks the patch's type and status against the record schema
// before any merge happens.
func validateEnums(patch tracker.Patch) error {
	if patch.Type != nil && !tracker.ValidType(*patch.Type) {
		return fmt.Errorf("invalid type %q", *patch.Type)
	}
	if patch.Status != nil && !tracker.ValidStatus(*patch.Status) {
		return fmt.Errorf("invalid status %q", *patch.Status)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
