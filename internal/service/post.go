// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/derive"
	"inkwell/internal/models"
)

// slugInsertRetries bounds how many times a create or retitle retries
// after losing a slug race to a concurrent writer. Each retry derives a
// fresh timestamp suffix, so collisions are effectively one-shot; the
// bound keeps a pathological store from looping forever.
const slugInsertRetries = 3

// PostService owns the post lifecycle: creation with derived fields,
// partial updates that keep derived fields consistent, deletion, and
// listing. Slug uniqueness is guaranteed here, not at the HTTP boundary.
type PostService struct {
	posts PostRepository
	now   func() time.Time
}

// NewPostService creates a PostService backed by the given repository.
func NewPostService(posts PostRepository) *PostService {
	return &PostService{posts: posts, now: time.Now}
}

// CreatePostInput carries the client-supplied fields for a new post.
// Slug, readTime, and (absent an override) excerpt are derived, never
// accepted from the client.
type CreatePostInput struct {
	Title    string     `json:"title" validate:"required,min=5,max=200"`
	Subtitle *string    `json:"subtitle" validate:"omitempty,max=100"`
	Content  string     `json:"content" validate:"required,min=10"`
	Excerpt  *string    `json:"excerpt" validate:"omitempty,max=300"`
	Category string     `json:"category" validate:"required"`
	Status   string     `json:"status" validate:"omitempty,oneof=Draft Published"`
	ImageURL *string    `json:"imageUrl" validate:"omitempty,url"`
	Featured bool       `json:"featured"`
	Tags     []string   `json:"tags" validate:"omitempty,max=10,dive,required"`
	AuthorID *uuid.UUID `json:"-"`
}

// UpdatePostInput is a partial patch: nil fields keep their current
// values. Supplying a new title re-derives the slug; supplying new
// content re-derives readTime and, unless an excerpt override comes
// with it, the excerpt.
type UpdatePostInput struct {
	Title    *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Subtitle *string  `json:"subtitle" validate:"omitempty,max=100"`
	Content  *string  `json:"content" validate:"omitempty,min=10"`
	Excerpt  *string  `json:"excerpt" validate:"omitempty,max=300"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Status   *string  `json:"status" validate:"omitempty,oneof=Draft Published"`
	ImageURL *string  `json:"imageUrl" validate:"omitempty,url"`
	Featured *bool    `json:"featured"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,required"`
}

// Create validates input, derives slug/excerpt/readTime, and persists
// the post. Posts default to Published unless the client asks for a
// draft. Slug collisions are resolved with a timestamp suffix; a
// concurrent writer taking the same slug triggers a bounded retry.
func (s *PostService) Create(in CreatePostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	status := models.PostStatusPublished
	if in.Status != "" {
		status = models.PostStatus(in.Status)
	}

	excerpt := derive.Excerpt(in.Content, derive.DefaultExcerptLength)
	if in.Excerpt != nil {
		excerpt = *in.Excerpt
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	base := derive.Slug(in.Title)
	if base == "" {
		return nil, models.NewValidationError("title", "title must contain at least one alphanumeric character")
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Content:  in.Content,
		Excerpt:  excerpt,
		Category: in.Category,
		Status:   status,
		ImageURL: in.ImageURL,
		ReadTime: derive.ReadTime(in.Content, derive.DefaultWordsPerMinute),
		Featured: in.Featured,
		Tags:     tags,
		AuthorID: in.AuthorID,
	}

	created, err := s.insertWithUniqueSlug(post, base, 0)
	if err != nil {
		return nil, err
	}
	attachAuthor(created)
	return created, nil
}

// insertWithUniqueSlug picks a free slug for the post and inserts it.
// The pre-check keeps the common path on the clean base slug; the
// unique constraint catches races, which are retried with a fresh
// suffix up to slugInsertRetries times before giving up with a
// conflict error.
func (s *PostService) insertWithUniqueSlug(post *models.Post, base string, excludeID int64) (*models.Post, error) {
	slug := base
	taken, err := s.posts.SlugExists(slug, excludeID)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if taken {
		slug = s.suffixed(base)
	}

	for attempt := 0; ; attempt++ {
		post.Slug = slug
		created, err := s.posts.Create(post)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, models.NewPersistenceError(err)
		}
		if attempt >= slugInsertRetries {
			return nil, models.NewConflictError(
				fmt.Sprintf("slug %q is already taken", slug), err)
		}
		slug = s.suffixed(base)
	}
}

// suffixed disambiguates a slug with the current unix-millisecond
// timestamp.
func (s *PostService) suffixed(base string) string {
	return fmt.Sprintf("%s-%d", base, s.now().UnixMilli())
}

// Get returns a post by ID for admin reads. Drafts are visible here.
func (s *PostService) Get(id int64) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", id)
	}
	attachAuthor(post)
	return post, nil
}

// GetPublished resolves a published post by slug for public reads and
// counts the view. Drafts and unknown slugs both read as not found.
func (s *PostService) GetPublished(slug string) (*models.Post, error) {
	post, err := s.posts.FindBySlug(slug)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}

	views, err := s.posts.IncrementViews(post.ID)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	post.Views = views

	attachAuthor(post)
	return post, nil
}

// Update applies a partial patch. An empty patch is a no-op that
// returns the current row. Retitling re-derives the slug (keeping it
// unique); new content re-derives readTime and, unless the patch also
// overrides it, the excerpt.
func (s *PostService) Update(id int64, in UpdatePostInput) (*models.Post, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", id)
	}

	retitled := in.Title != nil && *in.Title != post.Title

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Subtitle != nil {
		post.Subtitle = in.Subtitle
	}
	if in.Content != nil {
		post.Content = *in.Content
		post.ReadTime = derive.ReadTime(post.Content, derive.DefaultWordsPerMinute)
		if in.Excerpt == nil {
			post.Excerpt = derive.Excerpt(post.Content, derive.DefaultExcerptLength)
		}
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.Status != nil {
		post.Status = models.PostStatus(*in.Status)
	}
	if in.ImageURL != nil {
		post.ImageURL = in.ImageURL
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}

	if retitled {
		base := derive.Slug(post.Title)
		if base == "" {
			return nil, models.NewValidationError("title", "title must contain at least one alphanumeric character")
		}
		slug, err := s.freeSlug(base, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	updated, err := s.posts.Update(post)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.NewConflictError(
				fmt.Sprintf("slug %q is already taken", post.Slug), err)
		}
		return nil, models.NewPersistenceError(err)
	}
	if updated == nil {
		return nil, models.NewNotFoundError("post", id)
	}
	attachAuthor(updated)
	return updated, nil
}

// freeSlug returns base if no other post holds it, otherwise base with
// a timestamp suffix.
func (s *PostService) freeSlug(base string, excludeID int64) (string, error) {
	taken, err := s.posts.SlugExists(base, excludeID)
	if err != nil {
		return "", models.NewPersistenceError(err)
	}
	if taken {
		return s.suffixed(base), nil
	}
	return base, nil
}

// Delete removes a post and, through the schema, its comments. Deleting
// a missing post is an error, not a no-op.
func (s *PostService) Delete(id int64) error {
	deleted, err := s.posts.Delete(id)
	if err != nil {
		return models.NewPersistenceError(err)
	}
	if !deleted {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

// List returns posts newest first. includeDrafts is true for admin
// listings; public listings see only published posts.
func (s *PostService) List(includeDrafts bool) ([]models.Post, error) {
	var status *models.PostStatus
	if !includeDrafts {
		published := models.PostStatusPublished
		status = &published
	}

	posts, err := s.posts.List(status)
	if err != nil {
		return nil, models.NewPersistenceError(err)
	}
	for i := range posts {
		attachAuthor(&posts[i])
	}
	return posts, nil
}

// attachAuthor fills in the system author for posts without an owner so
// API responses always carry one.
func attachAuthor(p *models.Post) {
	if p.Author == nil {
		p.Author = models.DefaultAuthor()
	}
}
