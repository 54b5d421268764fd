package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/blogapi/internal/models"
	"github.com/crucial707/blogapi/internal/repo"
)

// memStore is an in-memory BlogStore with the same ordering and matching rules as BlogRepo.
type memStore struct {
	nextID int64
	blogs  map[int64]models.Blog
	err    error
}

func newMemStore() *memStore {
	return &memStore{blogs: make(map[int64]models.Blog)}
}

func (m *memStore) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	c := *b
	c.ID = m.nextID
	m.blogs[c.ID] = c
	return &c, nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, repo.ErrBlogNotFound
	}
	return &b, nil
}

func (m *memStore) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	old, ok := m.blogs[b.ID]
	if !ok {
		return nil, repo.ErrBlogNotFound
	}
	old.Title, old.Content, old.HashTags, old.Img, old.Likes = b.Title, b.Content, b.HashTags, b.Img, b.Likes
	m.blogs[b.ID] = old
	return &old, nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.blogs[id]; !ok {
		return repo.ErrBlogNotFound
	}
	delete(m.blogs, id)
	return nil
}

func (m *memStore) filter(keep func(models.Blog) bool, limit, offset int) ([]models.Blog, int) {
	var all []models.Blog
	for _, b := range m.blogs {
		if keep(b) {
			all = append(all, b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= total {
		return nil, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total
}

func (m *memStore) Search(ctx context.Context, q string, limit, offset int) ([]models.Blog, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	q = strings.ToLower(q)
	out, total := m.filter(func(b models.Blog) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Content), q) ||
			strings.Contains(strings.ToLower(b.HashTags), q)
	}, limit, offset)
	return out, total, nil
}

func (m *memStore) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Blog, int, error) {
	out, total := m.filter(func(b models.Blog) bool { return b.AuthorID == authorID }, limit, offset)
	return out, total, nil
}

var (
	u1 = &models.User{ID: 1, Email: "u1@example.com", Role: models.RoleUser}
	u2 = &models.User{ID: 2, Email: "u2@example.com", Role: models.RoleUser}
)

func seed(t *testing.T, s *BlogService) {
	t.Helper()
	now := time.Now()
	for _, b := range []*models.Blog{
		models.NewBlog(u1, "Hello", "World", "#x", "", now),
		models.NewBlog(u2, "Go tips", "channels and select", "#golang", "", now),
		models.NewBlog(u1, "Cooking", "pasta night", "#food #x", "", now),
	} {
		if _, err := s.Create(context.Background(), b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func TestBlogService_FindAll_EmptyQueryMatchesAllNewestFirst(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	page, err := s.FindAll(context.Background(), "", Pageable{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.TotalElements != 3 || len(page.Content) != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	for i := 1; i < len(page.Content); i++ {
		if page.Content[i-1].ID <= page.Content[i].ID {
			t.Errorf("not ordered by descending id: %d then %d", page.Content[i-1].ID, page.Content[i].ID)
		}
	}
}

func TestBlogService_FindAll_FiltersByQuery(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	page, err := s.FindAll(context.Background(), "#x", Pageable{})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 matches, got %+v", page)
	}
	for _, b := range page.Content {
		if !strings.Contains(b.HashTags, "#x") {
			t.Errorf("unexpected match: %+v", b)
		}
	}
}

func TestBlogService_FindAll_Paginates(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	page, err := s.FindAll(context.Background(), "", Pageable{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != 1 {
		t.Errorf("unexpected second page: %+v", page.Content)
	}
	if page.TotalPages != 2 || page.First || !page.Last {
		t.Errorf("unexpected metadata: %+v", page)
	}
}

func TestBlogService_FindByUserID(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	page, err := s.FindByUserID(context.Background(), u1.ID, Pageable{Page: 0, Limit: 10})
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if page.Page != 1 || page.TotalElements != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Content[0].ID != 3 || page.Content[1].ID != 1 {
		t.Errorf("unexpected order: %+v", page.Content)
	}
}

func TestBlogService_FindByID_MissingReturnsNil(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)

	blog, err := s.FindByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if blog != nil {
		t.Errorf("expected nil blog, got %+v", blog)
	}
}

func TestBlogService_DeleteByID_Idempotent(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	if err := s.DeleteByID(context.Background(), 1); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := s.DeleteByID(context.Background(), 1); err != nil {
		t.Errorf("second DeleteByID: %v", err)
	}
}

func TestBlogService_Update_PreservesAuthorAndCreatedAt(t *testing.T) {
	store := newMemStore()
	s := NewBlogService(store, 0)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b, err := s.Create(context.Background(), models.NewBlog(u1, "Hello", "World", "", "", created))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	b.Title, b.Content = "Hello2", "World2"
	updated, err := s.Update(context.Background(), b)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Hello2" || updated.AuthorID != u1.ID || updated.Likes != 0 || !updated.CreatedAt.Equal(created) {
		t.Errorf("unexpected blog after update: %+v", updated)
	}
}

func TestBlogService_FindAll_HugePageIsEmpty(t *testing.T) {
	s := NewBlogService(newMemStore(), 0)
	seed(t, s)

	page, err := s.FindAll(context.Background(), "", Pageable{Page: 1_000_000_000_000_000_000, Limit: 10})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(page.Content) != 0 || page.TotalElements != 3 || !page.Last {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestBlogService_PropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection refused")
	s := NewBlogService(store, 0)

	if _, err := s.FindAll(context.Background(), "", Pageable{}); err == nil {
		t.Error("expected error from FindAll")
	}
	if _, err := s.Create(context.Background(), models.NewBlog(u1, "t", "c", "", "", time.Now())); err == nil {
		t.Error("expected error from Create")
	}
}

func TestPageable_Normalize(t *testing.T) {
	cases := []struct {
		in       Pageable
		maxLimit int
		want     Pageable
	}{
		{Pageable{}, 0, Pageable{Page: 1, Limit: DefaultLimit}},
		{Pageable{Page: 0, Limit: 10}, 0, Pageable{Page: 1, Limit: 10}},
		{Pageable{Page: -3, Limit: -1}, 0, Pageable{Page: 1, Limit: DefaultLimit}},
		{Pageable{Page: 2, Limit: 1000}, 0, Pageable{Page: 2, Limit: MaxLimit}},
		{Pageable{Page: 2, Limit: 60}, 50, Pageable{Page: 2, Limit: 50}},
		{Pageable{Page: math.MaxInt, Limit: 10}, 0, Pageable{Page: math.MaxInt/10 + 1, Limit: 10}},
	}
	for _, c := range cases {
		got := c.in.Normalize(c.maxLimit)
		if got != c.want {
			t.Errorf("Normalize(%+v, %d) = %+v, want %+v", c.in, c.maxLimit, got, c.want)
		}
		if got.Offset() < 0 {
			t.Errorf("Normalize(%+v, %d).Offset() = %d, want >= 0", c.in, c.maxLimit, got.Offset())
		}
	}
	if off := (Pageable{Page: 3, Limit: 10}).Offset(); off != 20 {
		t.Errorf("Offset: got %d, want 20", off)
	}
}
