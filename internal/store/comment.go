// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment. The post_id foreign key is enforced at
// the database level; callers should use IsForeignKeyViolation on the
// returned error to detect a dangling post reference.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	out := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, name, email, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, post_id, name, email, content, status, created_at
	`, c.PostID, c.Name, c.Email, c.Content, c.Status).Scan(
		&out.ID, &out.PostID, &out.Name, &out.Email, &out.Content,
		&out.Status, &out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return out, nil
}

// FindByID retrieves a comment by ID. Returns nil if not found.
func (s *CommentStore) FindByID(id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT id, post_id, name, email, content, status, created_at
		FROM comments WHERE id = $1
	`, id).Scan(
		&c.ID, &c.PostID, &c.Name, &c.Email, &c.Content, &c.Status, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListByPost returns comments for a post, newest first. Pass approvedOnly
// true for public reads; moderation views pass false to see everything.
func (s *CommentStore) ListByPost(postID int64, approvedOnly bool) ([]models.Comment, error) {
	query := `
		SELECT id, post_id, name, email, content, status, created_at
		FROM comments WHERE post_id = $1`
	if approvedOnly {
		query += ` AND status = 'Approved'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

// List returns all comments across posts, newest first. Used by the
// moderation queue.
func (s *CommentStore) List() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, name, email, content, status, created_at
		FROM comments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]models.Comment, error) {
	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Name, &c.Email, &c.Content, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Approve moves a comment out of the moderation queue and returns the
// updated row. Returns nil if the comment does not exist.
func (s *CommentStore) Approve(id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		UPDATE comments SET status = 'Approved' WHERE id = $1
		RETURNING id, post_id, name, email, content, status, created_at
	`, id).Scan(
		&c.ID, &c.PostID, &c.Name, &c.Email, &c.Content, &c.Status, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("approve comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment by ID. Returns false if no row was deleted.
func (s *CommentStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment rows affected: %w", err)
	}
	return n > 0, nil
}
