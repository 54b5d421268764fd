// Package service holds the blog business rules that sit between the HTTP
// handlers and the repositories. It performs no authorization.
package service

import (
	"context"
	"errors"

	"github.com/crucial707/blogapi/internal/models"
	"github.com/crucial707/blogapi/internal/repo"
)

// BlogStore is the persistence the service needs. *repo.BlogRepo satisfies it.
type BlogStore interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, limit, offset int) ([]models.Blog, int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Blog, int, error)
}

type BlogService struct {
	store   BlogStore
	maxPage int
}

// NewBlogService returns a service over store. maxPageSize <= 0 means MaxLimit.
func NewBlogService(store BlogStore, maxPageSize int) *BlogService {
	return &BlogService{store: store, maxPage: maxPageSize}
}

// Create persists a blog the caller has already populated (author, likes, createdAt).
func (s *BlogService) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	return s.store.Create(ctx, blog)
}

// FindByID returns nil, nil when the blog does not exist.
func (s *BlogService) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	blog, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repo.ErrBlogNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Update persists the mutable fields of an existing blog.
func (s *BlogService) Update(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	return s.store.Update(ctx, blog)
}

// DeleteByID removes the blog. Deleting a missing id is not an error.
func (s *BlogService) DeleteByID(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, repo.ErrBlogNotFound) {
		return nil
	}
	return err
}

// FindAll returns blogs matching query in title, content or hashtags, newest first.
// An empty query matches every blog.
func (s *BlogService) FindAll(ctx context.Context, query string, p Pageable) (models.Page[models.Blog], error) {
	p = p.Normalize(s.maxPage)
	blogs, total, err := s.store.Search(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return models.Page[models.Blog]{}, err
	}
	return models.NewPage(blogs, p.Page, p.Limit, total), nil
}

// FindByUserID returns the blogs authored by userID, newest first.
func (s *BlogService) FindByUserID(ctx context.Context, userID int64, p Pageable) (models.Page[models.Blog], error) {
	p = p.Normalize(s.maxPage)
	blogs, total, err := s.store.ListByAuthor(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return models.Page[models.Blog]{}, err
	}
	return models.NewPage(blogs, p.Page, p.Limit, total), nil
}
