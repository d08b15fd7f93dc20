// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Comments groups the comment HTTP handlers.
type Comments struct {
	comments *service.CommentService
}

// NewComments creates a new Comments handler group.
func NewComments(comments *service.CommentService) *Comments {
	return &Comments{comments: comments}
}

// Submit serves POST /api/comments: public comment submission. The
// comment lands in the moderation queue, so the response carries the
// Pending status back to the client.
func (h *Comments) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitCommentInput
	if !decodeJSON(w, r, &in) {
		return
	}

	comment, err := h.comments.Submit(in)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("comment submitted", "id", comment.ID, "post_id", comment.PostID)
	respondJSON(w, http.StatusCreated, comment)
}

// ListForPost serves GET /api/comments?postId=N: approved comments for
// a post, newest first.
func (h *Comments) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.URL.Query().Get("postId"), 10, 64)
	if err != nil || postID <= 0 {
		respondJSON(w, http.StatusBadRequest,
			errorBody{Error: "postId must be a positive integer", Field: "postId"})
		return
	}

	comments, err := h.comments.ListForPost(postID, true)
	if err != nil {
		respondError(w, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// AdminList serves GET /api/admin/comments: the full moderation queue
// across posts.
func (h *Comments) AdminList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListAll()
	if err != nil {
		respondError(w, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// Approve serves POST /api/admin/comments/{id}/approve.
func (h *Comments) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid comment id"})
		return
	}

	comment, err := h.comments.Approve(id)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("comment approved", "id", comment.ID)
	respondJSON(w, http.StatusOK, comment)
}

// Delete serves DELETE /api/admin/comments/{id}.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid comment id"})
		return
	}

	if err := h.comments.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("comment deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
