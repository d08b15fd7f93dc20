// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/storage"
)

// maxUploadBytes caps multipart upload bodies at 10 MiB.
const maxUploadBytes = 10 << 20

// allowedImageTypes are the content types accepted for post media.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Uploads handles post media uploads to object storage. storage may be
// nil when S3 is not configured; uploads then return 503.
type Uploads struct {
	storage *storage.Client
}

// NewUploads creates a new Uploads handler group.
func NewUploads(st *storage.Client) *Uploads {
	return &Uploads{storage: st}
}

// Upload serves POST /api/admin/uploads: a multipart image lands in the
// media bucket under a date-prefixed random key and the durable public
// URL comes back.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable,
			errorBody{Error: "media storage is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid multipart body"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest,
			errorBody{Error: "missing file field", Field: "file"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Fall back to the filename extension for clients that send
		// application/octet-stream.
		ext = strings.ToLower(path.Ext(header.Filename))
		contentType, ok = imageTypeForExt(ext)
		if !ok {
			respondJSON(w, http.StatusBadRequest,
				errorBody{Error: "unsupported image type", Field: "file"})
			return
		}
	}

	key := fmt.Sprintf("uploads/%s/%s%s",
		time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)

	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	url := h.storage.FileURL(key)
	slog.Info("media uploaded", "key", key, "size", header.Size)
	respondJSON(w, http.StatusCreated, map[string]string{"url": url, "key": key})
}

func imageTypeForExt(ext string) (string, bool) {
	for ct, e := range allowedImageTypes {
		if e == ext || (ext == ".jpeg" && ct == "image/jpeg") {
			return ct, true
		}
	}
	return "", false
}
