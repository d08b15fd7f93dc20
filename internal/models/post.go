// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "Draft"
	PostStatusPublished PostStatus = "Published"
)

// Valid reports whether the status is one of the known states.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// MaxTags is the maximum number of tags a post may carry.
const MaxTags = 10

// Categories is the canonical category set offered by the editor UI.
// Category is stored as free text, so values outside this list are accepted.
var Categories = []string{
	"Technology",
	"Business",
	"Health",
	"Science",
	"Sports",
	"Entertainment",
	"Politics",
	"Education",
}

// Post represents one article. Slug, Excerpt, and ReadTime are derived
// fields owned by the lifecycle service; they are never written by the
// HTTP boundary directly.
type Post struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Subtitle     *string    `json:"subtitle,omitempty"`
	Content      string     `json:"content"`
	Excerpt      string     `json:"excerpt"`
	Category     string     `json:"category"`
	Status       PostStatus `json:"status"`
	ImageURL     *string    `json:"imageUrl,omitempty"`
	ReadTime     int        `json:"readTime"`
	Featured     bool       `json:"featured"`
	Slug         string     `json:"slug"`
	Tags         []string   `json:"tags"`
	Views        int        `json:"views"`
	AuthorID     *uuid.UUID `json:"-"`
	Author       *Author    `json:"author,omitempty"`
	CommentCount int        `json:"commentsCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Author is the public projection of a post's owner attached to API
// responses. Posts without an owner resolve to DefaultAuthor.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// DefaultAuthor is the system fallback used when a post has no owner,
// for example after its author account was deleted.
func DefaultAuthor() *Author {
	return &Author{
		ID:          "system",
		DisplayName: "Admin",
		Email:       "admin@inkwell.local",
		Role:        string(RoleAdmin),
	}
}
