package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/blogapi/internal/models"
	"github.com/lib/pq"
)

// AuditRepo persists the blog audit trail.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo returns a new AuditRepo.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record stores one blog change. ID and CreatedAt are assigned by the database.
func (r *AuditRepo) Record(ctx context.Context, e models.BlogAudit) error {
	changed := e.Changed
	if changed == nil {
		changed = []string{}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blog_audit (user_id, action, blog_id, title, changed) VALUES ($1, $2, $3, $4, $5)`,
		e.UserID, e.Action, e.BlogID, e.Title, pq.Array(changed),
	)
	if err != nil {
		return fmt.Errorf("record blog audit: %w", err)
	}
	return nil
}

// List returns recorded changes, newest first. A blogID of 0 lists every blog.
func (r *AuditRepo) List(ctx context.Context, blogID int64, limit, offset int) ([]models.BlogAudit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, blog_id, title, changed, created_at FROM blog_audit
		WHERE ($1::bigint = 0 OR blog_id = $1) ORDER BY id DESC LIMIT $2 OFFSET $3`,
		blogID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list blog audit: %w", err)
	}
	defer rows.Close()

	entries := []models.BlogAudit{}
	for rows.Next() {
		var e models.BlogAudit
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.BlogID, &e.Title, pq.Array(&e.Changed), &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
