// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"fmt"

	"inkwell/internal/models"
)

// CommentService handles public comment submission and admin moderation.
// Submitted comments always start in Pending state regardless of what
// the client sends.
type CommentService struct {
	comments CommentRepository
}

// NewCommentService creates a CommentService backed by the given repository.
func NewCommentService(comments CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

// SubmitCommentInput carries the client-supplied fields for a new
// comment. Status is never accepted from the client.
type SubmitCommentInput struct {
	PostID  int64   `json:"postId" validate:"required,gt=0"`
	Name    string  `json:"name" validate:"required,min=2,max=50"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Content string  `json:"content" validate:"required,min=5,max=1000"`
}

// Submit validates and stores a comment in Pending state. Referencing a
// nonexistent post is reported as a client error; the check is the
// foreign key itself, so there is no race against a concurrent post
// delete.
func (s *CommentService) Submit(in SubmitCommentInput) (*models.Comment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	created, err := s.comments.Create(&models.Comment{
		PostID:  in.PostID,
		Name:    in.Name,
		Email:   in.Email,
		Content: in.Content,
		Status:  models.CommentStatusPending,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, models.NewForeignKeyError(
				fmt.Sprintf("post %d does not exist", in.PostID), err)
		}
		return nil, models.NewPersistenceError(err)
	}
	return created, nil
}

// ListForPost returns a post's comments, newest first. Public callers
// pass approvedOnly true and never see the moderation queue.
func (s *CommentService) ListForPost(postID int64, approvedOnly bool) ([]models.Comment, error) {
	comments, err := s.comments.ListByPost(postID, approvedOnly)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return comments, nil
}

// ListAll returns every comment for the moderation queue.
func (s *CommentService) ListAll() ([]models.Comment, error) {
	comments, err := s.comments.List()
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	return comments, nil
}

// Approve publishes a pending comment. Approving an already-approved
// comment is a no-op; approving a missing one is an error.
func (s *CommentService) Approve(id int64) (*models.Comment, error) {
	comment, err := s.comments.Approve(id)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if comment == nil {
		return nil, models.NewNotFoundError("comment", id)
	}
	return comment, nil
}

// Delete removes a comment. Deleting a missing comment is an error,
// not a no-op.
func (s *CommentService) Delete(id int64) error {
	deleted, err := s.comments.Delete(id)
	if err != nil {
		return models.NewPersistenceError(err)
	}
	if !deleted {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
