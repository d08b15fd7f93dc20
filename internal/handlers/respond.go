// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP handlers for the Inkwell
// API. Handlers decode and dispatch to the service layer; all status
// code mapping from typed application errors happens here.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/models"
)

// maxBodyBytes caps JSON request bodies. Post content is the largest
// legitimate payload; 1 MiB is generous for it.
const maxBodyBytes = 1 << 20

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("response encode failed", "error", err)
		}
	}
}

// errorBody is the uniform JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps a typed application error onto an HTTP status and
// writes the JSON error body. Persistence causes are logged here and
// never leak to the client.
func respondError(w http.ResponseWriter, err error) {
	var appErr *models.Error
	if !errors.As(err, &appErr) {
		slog.Error("unclassified handler error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	switch appErr.Kind {
	case models.ErrKindValidation, models.ErrKindForeignKey:
		respondJSON(w, http.StatusBadRequest, errorBody{Error: appErr.Message, Field: appErr.Field})
	case models.ErrKindNotFound:
		respondJSON(w, http.StatusNotFound, errorBody{Error: appErr.Message})
	case models.ErrKindConflict:
		respondJSON(w, http.StatusConflict, errorBody{Error: appErr.Message})
	default:
		slog.Error("storage failure", "error", appErr.Err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// decodeJSON reads a JSON request body into dst. It enforces the JSON
// content type (415 on mismatch) and a body size cap, and rejects
// malformed or trailing input with a 400. Returns false if a response
// was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			respondJSON(w, http.StatusUnsupportedMediaType,
				errorBody{Error: "Content-Type must be application/json"})
			return false
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return false
	}
	// A second token means trailing garbage after the JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed JSON body"})
		return false
	}
	return true
}

// pathID parses the named chi URL parameter as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
