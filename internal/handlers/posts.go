// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Posts groups the post HTTP handlers, public and admin.
type Posts struct {
	posts    *service.PostService
	comments *service.CommentService
	feed     *cache.FeedCache
}

// NewPosts creates a new Posts handler group. feed may be nil when no
// cache is configured; reads then always hit the database.
func NewPosts(posts *service.PostService, comments *service.CommentService, feed *cache.FeedCache) *Posts {
	return &Posts{posts: posts, comments: comments, feed: feed}
}

// postReadResponse is the public single-post payload: the post plus its
// rendered HTML body and approved comments.
type postReadResponse struct {
	*models.Post
	ContentHTML string           `json:"contentHtml"`
	Comments    []models.Comment `json:"comments"`
}

// ListPublished serves GET /api/posts: the published feed, newest
// first, served from the Valkey cache when warm.
func (h *Posts) ListPublished(w http.ResponseWriter, r *http.Request) {
	if h.feed != nil {
		if body, ok := h.feed.Get(r.Context()); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			return
		}
	}

	posts, err := h.posts.List(false)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	body, err := json.Marshal(posts)
	if err != nil {
		slog.Error("feed encode failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}
	if h.feed != nil {
		h.feed.Set(r.Context(), body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// GetBySlug serves GET /api/posts/{slug}: one published post with
// rendered HTML and approved comments. Counts the view.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.posts.GetPublished(slug)
	if err != nil {
		respondError(w, err)
		return
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("markdown render failed", "slug", slug, "error", err)
		html = ""
	}

	comments, err := h.comments.ListForPost(post.ID, true)
	if err != nil {
		respondError(w, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	respondJSON(w, http.StatusOK, postReadResponse{
		Post:        post,
		ContentHTML: html,
		Comments:    comments,
	})
}

// AdminList serves GET /api/admin/posts: every post including drafts.
func (h *Posts) AdminList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(true)
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// AdminGet serves GET /api/admin/posts/{id}: one post, drafts included.
func (h *Posts) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid post id"})
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create serves POST /api/admin/posts. The authenticated user becomes
// the post's author.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		uid := sess.UserID
		in.AuthorID = &uid
	}

	post, err := h.posts.Create(in)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidateFeed(r)
	slog.Info("post created", "id", post.ID, "slug", post.Slug)
	respondJSON(w, http.StatusCreated, post)
}

// Update serves PUT /api/admin/posts/{id} with partial-patch semantics.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid post id"})
		return
	}

	var in service.UpdatePostInput
	if !decodeJSON(w, r, &in) {
		return
	}

	post, err := h.posts.Update(id, in)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidateFeed(r)
	slog.Info("post updated", "id", post.ID, "slug", post.Slug)
	respondJSON(w, http.StatusOK, post)
}

// Delete serves DELETE /api/admin/posts/{id}. Comments cascade away
// with the post.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid post id"})
		return
	}

	if err := h.posts.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	h.invalidateFeed(r)
	slog.Info("post deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Posts) invalidateFeed(r *http.Request) {
	if h.feed != nil {
		h.feed.Invalidate(r.Context())
	}
}
