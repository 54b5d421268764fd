package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/blogapi/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// BlogRepo persists blogs. Reads join users for the author's public profile;
// password_hash is never selected here.
type BlogRepo struct {
	DB *sql.DB
}

func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db}
}

const blogSelect = `SELECT b.id, b.title, b.content, COALESCE(b.hash_tags, ''), COALESCE(b.img, ''), b.likes, b.created_at,
	u.id, u.email, COALESCE(u.name, ''), u.role
	FROM blogs b JOIN users u ON u.id = b.author_id`

const searchFilter = `b.title ILIKE $1 OR b.content ILIKE $1 OR COALESCE(b.hash_tags, '') ILIKE $1`

func scanBlog(row interface{ Scan(...any) error }) (models.Blog, error) {
	var b models.Blog
	author := &models.User{}
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		&b.HashTags,
		&b.Img,
		&b.Likes,
		&b.CreatedAt,
		&author.ID,
		&author.Email,
		&author.Name,
		&author.Role,
	)
	if err != nil {
		return b, err
	}
	b.AuthorID = author.ID
	b.Author = author
	return b, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ========================
// CREATE BLOG
// ========================

func (r *BlogRepo) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	created := *blog
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO blogs (title, content, author_id, likes, hash_tags, img, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		blog.Title, blog.Content, blog.AuthorID, blog.Likes,
		nullIfEmpty(blog.HashTags), nullIfEmpty(blog.Img), blog.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	return &created, nil
}

// ========================
// GET BLOG BY ID
// ========================

func (r *BlogRepo) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	b, err := scanBlog(r.DB.QueryRowContext(ctx, blogSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog %d: %w", id, err)
	}
	return &b, nil
}

// ========================
// UPDATE BLOG
// ========================

// Update writes the mutable columns only. author_id and created_at are left as stored.
func (r *BlogRepo) Update(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE blogs
		 SET title = $1, content = $2, hash_tags = $3, img = $4, likes = $5
		 WHERE id = $6`,
		blog.Title, blog.Content, nullIfEmpty(blog.HashTags), nullIfEmpty(blog.Img), blog.Likes, blog.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update blog %d: %w", blog.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrBlogNotFound
	}
	return r.GetByID(ctx, blog.ID)
}

// ========================
// DELETE BLOG BY ID
// ========================

func (r *BlogRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// ========================
// SEARCH BLOGS WITH PAGINATION
// ========================

// Search returns blogs whose title, content or hashtags contain query
// (case-insensitive), newest id first, plus the total number of matches.
func (r *BlogRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.Blog, int, error) {
	pattern := containsPattern(query)

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs b WHERE `+searchFilter, pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		blogSelect+` WHERE `+searchFilter+` ORDER BY b.id DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search blogs: %w", err)
	}
	blogs, err := collectBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ========================
// LIST BLOGS BY AUTHOR
// ========================

func (r *BlogRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Blog, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs WHERE author_id = $1`, authorID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs for author %d: %w", authorID, err)
	}

	rows, err := r.DB.QueryContext(ctx,
		blogSelect+` WHERE b.author_id = $1 ORDER BY b.id DESC LIMIT $2 OFFSET $3`,
		authorID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs for author %d: %w", authorID, err)
	}
	blogs, err := collectBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func collectBlogs(rows *sql.Rows) ([]models.Blog, error) {
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}
