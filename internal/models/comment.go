// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CommentStatus is the moderation state controlling a comment's visibility.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "Pending"
	CommentStatusApproved CommentStatus = "Approved"
)

// Comment represents one reader comment on a post. Comments are created
// in Pending state and become publicly visible once approved.
type Comment struct {
	ID        int64         `json:"id"`
	PostID    int64         `json:"postId"`
	Name      string        `json:"name"`
	Email     *string       `json:"email,omitempty"`
	Content   string        `json:"content"`
	Status    CommentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// IsApproved returns true if the comment has passed moderation.
func (c *Comment) IsApproved() bool {
	return c.Status == CommentStatusApproved
}
