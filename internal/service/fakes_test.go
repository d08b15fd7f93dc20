// In-memory repository fakes for service tests. They enforce the same
// constraints the schema does (unique slug, comment post_id foreign
// key) by returning pgconn errors with the matching codes.
package service

import (
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/models"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_key"}
}

func fkViolation() error {
	return &pgconn.PgError{Code: "23503", ConstraintName: "comments_post_id_fkey"}
}

type fakePostRepo struct {
	nextID int64
	posts  map[int64]*models.Post

	// createErrs is consumed one entry per Create call before the
	// insert runs, simulating writers that win a slug race.
	createErrs []error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}}
}

func (f *fakePostRepo) Create(p *models.Post) (*models.Post, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	for _, q := range f.posts {
		if q.Slug == p.Slug {
			return nil, uniqueViolation()
		}
	}
	f.nextID++
	cp := *p
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePostRepo) FindByID(id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) FindBySlug(slug string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.Status == models.PostStatusPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) SlugExists(slug string, excludeID int64) (bool, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) Update(p *models.Post) (*models.Post, error) {
	existing, ok := f.posts[p.ID]
	if !ok {
		return nil, nil
	}
	for _, q := range f.posts {
		if q.ID != p.ID && q.Slug == p.Slug {
			return nil, uniqueViolation()
		}
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	f.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePostRepo) Delete(id int64) (bool, error) {
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakePostRepo) List(status *models.PostStatus) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, *p)
	}
	// Newest first, matching the store's ORDER BY.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePostRepo) IncrementViews(id int64) (int, error) {
	p, ok := f.posts[id]
	if !ok {
		return 0, nil
	}
	p.Views++
	return p.Views, nil
}

type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*models.Comment
	posts    *fakePostRepo
}

func newFakeCommentRepo(posts *fakePostRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*models.Comment{}, posts: posts}
}

func (f *fakeCommentRepo) Create(c *models.Comment) (*models.Comment, error) {
	if _, ok := f.posts.posts[c.PostID]; !ok {
		return nil, fkViolation()
	}
	f.nextID++
	cp := *c
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.comments[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCommentRepo) FindByID(id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByPost(postID int64, approvedOnly bool) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID != postID {
			continue
		}
		if approvedOnly && c.Status != models.CommentStatusApproved {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCommentRepo) List() ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCommentRepo) Approve(id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	c.Status = models.CommentStatusApproved
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Delete(id int64) (bool, error) {
	if _, ok := f.comments[id]; !ok {
		return false, nil
	}
	delete(f.comments, id)
	return true, nil
}

type fakeSubscriberRepo struct {
	nextID int64
	subs   map[string]*models.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subs: map[string]*models.Subscriber{}}
}

func (f *fakeSubscriberRepo) Subscribe(email string) (*models.Subscriber, error) {
	if sub, ok := f.subs[email]; ok {
		cp := *sub
		return &cp, nil
	}
	f.nextID++
	sub := &models.Subscriber{ID: f.nextID, Email: email, CreatedAt: time.Now()}
	f.subs[email] = sub
	cp := *sub
	return &cp, nil
}

func (f *fakeSubscriberRepo) List() ([]models.Subscriber, error) {
	var out []models.Subscriber
	for _, sub := range f.subs {
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
