package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewUser_Defaults(t *testing.T) {
	u := NewUser("a@example.com", "hash", "A")
	if u.Role != RoleUser || u.ID != 0 || u.IsAdmin() {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestNewBlog_Defaults(t *testing.T) {
	author := &User{ID: 7, Email: "a@example.com", Role: RoleUser}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	b := NewBlog(author, "t", "c", "#go", "", now)
	if b.Likes != 0 || b.AuthorID != 7 || b.Author != author {
		t.Errorf("unexpected blog: %+v", b)
	}
	if !b.CreatedAt.Equal(now) || b.CreatedAt.Location() != time.UTC {
		t.Errorf("createdAt: got %v, want %v in UTC", b.CreatedAt, now)
	}
}

func TestBlogView_NeverCarriesPassword(t *testing.T) {
	author := &User{ID: 7, Email: "a@example.com", PasswordHash: "secret-hash", Role: RoleUser}
	b := NewBlog(author, "t", "c", "", "", time.Now())

	for name, v := range map[string]any{"blog": b, "view": b.View(), "user": author} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		if strings.Contains(string(data), "secret-hash") || strings.Contains(strings.ToLower(string(data)), "password") {
			t.Errorf("%s leaks password: %s", name, data)
		}
	}
	if got := b.View().Author; got.ID != 7 || got.Email != "a@example.com" {
		t.Errorf("unexpected author view: %+v", got)
	}
}

func TestBlogView_WithoutLoadedAuthor(t *testing.T) {
	b := Blog{ID: 1, AuthorID: 9}
	if got := b.View().Author.ID; got != 9 {
		t.Errorf("author id: got %d, want 9", got)
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name                string
		items               []int
		page, size, total   int
		wantPages           int
		wantFirst, wantLast bool
	}{
		{"empty", nil, 1, 10, 0, 0, true, true},
		{"single page", []int{1, 2}, 1, 10, 2, 1, true, true},
		{"middle page", []int{3}, 2, 1, 3, 3, false, false},
		{"last page", []int{5}, 3, 2, 5, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.items, tt.page, tt.size, tt.total)
			if p.Content == nil {
				t.Error("content must not be nil")
			}
			if p.TotalPages != tt.wantPages || p.First != tt.wantFirst || p.Last != tt.wantLast {
				t.Errorf("got %+v", p)
			}
			if p.NumberOfElements != len(tt.items) {
				t.Errorf("numberOfElements: got %d, want %d", p.NumberOfElements, len(tt.items))
			}
		})
	}
}

func TestMapPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 2, 3, 9)
	out := MapPage(p, func(i int) string { return strings.Repeat("x", i) })
	if len(out.Content) != 3 || out.Content[2] != "xxx" {
		t.Errorf("content: %v", out.Content)
	}
	if out.Page != 2 || out.TotalElements != 9 || out.TotalPages != 3 || out.First || out.Last {
		t.Errorf("metadata: %+v", out)
	}
}

func TestChangedFields(t *testing.T) {
	before := Blog{ID: 1, Title: "t", Content: "c", HashTags: "#a", Img: "", Likes: 3}

	if got := ChangedFields(before, before); len(got) != 0 {
		t.Errorf("no edits: got %v", got)
	}

	after := before
	after.Title = "t2"
	after.Img = "https://img.example.com/x.png"
	after.Likes = 9
	got := ChangedFields(before, after)
	if strings.Join(got, ",") != "title,img" {
		t.Errorf("got %v, want [title img]", got)
	}
}
