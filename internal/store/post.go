// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"inkwell/internal/models"
)

// postColumns is the shared SELECT list for post queries: the post row,
// the left-joined author, and the comment count.
const postColumns = `
	p.id, p.title, p.subtitle, p.content, p.excerpt, p.category, p.status,
	p.image_url, p.read_time, p.featured, p.slug, p.tags, p.views,
	p.author_id, p.created_at, p.updated_at,
	u.id, u.email, u.display_name, u.role,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost reads one joined post row. The author columns are nullable;
// posts without an owner get a nil Author (the service attaches the
// system default).
func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tags []byte
	var aID, aEmail, aName, aRole sql.NullString

	err := row.Scan(
		&p.ID, &p.Title, &p.Subtitle, &p.Content, &p.Excerpt, &p.Category,
		&p.Status, &p.ImageURL, &p.ReadTime, &p.Featured, &p.Slug, &tags,
		&p.Views, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&aID, &aEmail, &aName, &aRole,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	p.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal post tags: %w", err)
		}
	}

	if aID.Valid {
		p.Author = &models.Author{
			ID:          aID.String,
			Email:       aEmail.String,
			DisplayName: aName.String,
			Role:        aRole.String,
		}
	}

	return p, nil
}

// Create inserts a new post and returns it with the generated ID, the
// resolved author, and a zero comment count.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal post tags: %w", err)
	}

	var id int64
	err = s.db.QueryRow(`
		INSERT INTO posts (title, subtitle, content, excerpt, category, status,
		                   image_url, read_time, featured, slug, tags, views, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, p.Title, p.Subtitle, p.Content, p.Excerpt, p.Category, p.Status,
		p.ImageURL, p.ReadTime, p.Featured, p.Slug, tags, p.Views, p.AuthorID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.FindByID(id)
}

// FindByID retrieves a post by its ID with author and comment count
// attached. Returns nil if not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a published post by its slug. Returns nil if not
// found. Used for public permalink reads.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.status = 'Published'
	`, slug)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether any post other than excludeID already holds
// the given slug. Pass excludeID 0 for creation checks. This is an
// optimistic pre-check only — the unique constraint on posts.slug is the
// source of truth under concurrency.
func (s *PostStore) SlugExists(slug string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

// Update rewrites a post's mutable columns and returns the fresh row.
// The caller (lifecycle service) is responsible for merging the patch
// into the existing record first.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal post tags: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, subtitle = $2, content = $3, excerpt = $4, category = $5,
			status = $6, image_url = $7, read_time = $8, featured = $9,
			slug = $10, tags = $11, updated_at = NOW()
		WHERE id = $12
	`, p.Title, p.Subtitle, p.Content, p.Excerpt, p.Category, p.Status,
		p.ImageURL, p.ReadTime, p.Featured, p.Slug, tags, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}

	return s.FindByID(p.ID)
}

// Delete removes a post by ID. Comments cascade at the database level.
// Returns false if no row was deleted.
func (s *PostStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns posts ordered by creation date descending, each with its
// author and comment count. A nil status returns every post; otherwise
// only posts in the given status.
func (s *PostStore) List(status *models.PostStatus) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		LEFT JOIN users u ON u.id = p.author_id`
	args := []any{}
	if status != nil {
		query += ` WHERE p.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// IncrementViews bumps the view counter for a post and returns the new
// value. The counter is monotonically non-decreasing.
func (s *PostStore) IncrementViews(id int64) (int, error) {
	var views int
	err := s.db.QueryRow(`
		UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views
	`, id).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("increment post views: %w", err)
	}
	return views, nil
}
