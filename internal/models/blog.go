package models

import "time"

// Column limits, in characters.
const (
	MaxTitleLength    = 255
	MaxContentLength  = 5000
	MaxHashTagsLength = 5000
	MaxImgLength      = 5000
)

// Blog is a single authored post. Author is populated on reads; AuthorID is
// the foreign key and never changes after creation.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"-"`
	Author    *User     `json:"-"`
	Likes     int64     `json:"likes"`
	HashTags  string    `json:"hashTags"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBlog builds a blog owned by author with zero likes and createdAt set to now.
func NewBlog(author *User, title, content, hashTags, img string, now time.Time) *Blog {
	b := &Blog{
		Title:     title,
		Content:   content,
		Author:    author,
		HashTags:  hashTags,
		Img:       img,
		Likes:     0,
		CreatedAt: now.UTC(),
	}
	if author != nil {
		b.AuthorID = author.ID
	}
	return b
}

// BlogView is the public projection of a Blog returned to clients.
type BlogView struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	HashTags  string     `json:"hashTags"`
	Img       string     `json:"img"`
	Likes     int64      `json:"likes"`
	Author    PublicUser `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (b Blog) View() BlogView {
	author := b.Author.Public()
	if b.Author == nil {
		author.ID = b.AuthorID
	}
	return BlogView{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		HashTags:  b.HashTags,
		Img:       b.Img,
		Likes:     b.Likes,
		Author:    author,
		CreatedAt: b.CreatedAt,
	}
}
