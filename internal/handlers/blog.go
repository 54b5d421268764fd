package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/blogapi/internal/metrics"
	"github.com/crucial707/blogapi/internal/middleware"
	"github.com/crucial707/blogapi/internal/models"
	"github.com/crucial707/blogapi/internal/repo"
	"github.com/crucial707/blogapi/internal/sanitize"
	"github.com/crucial707/blogapi/internal/service"
)

// UserLookup resolves the authenticated caller to a full user record.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuditLogger records blog mutations. Optional.
type AuditLogger interface {
	Record(ctx context.Context, e models.BlogAudit) error
}

// ==========================
// BlogHandler
// ==========================
type BlogHandler struct {
	Service   *service.BlogService
	Users     UserLookup
	Audit     AuditLogger
	Sanitizer *sanitize.Sanitizer

	// EnforceOwnership limits update and delete to the author or an ADMIN.
	EnforceOwnership bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// blogInput is the create/update payload. likes, author and createdAt are
// not part of it; any such keys a client sends are ignored.
type blogInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required,max=5000"`
	HashTags string `json:"hashTags" validate:"max=5000"`
	Img      string `json:"img" validate:"max=5000"`
}

func (h *BlogHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// readInput decodes and validates the payload, then sanitizes it. Limits apply to
// what the client sent; the sanitized result is checked again so stored values
// stay within the column sizes. On failure it has already written the 400 response.
func (h *BlogHandler) readInput(w http.ResponseWriter, r *http.Request) (blogInput, bool) {
	var in blogInput
	if err := decodeJSON(r, &in); err != nil {
		JSONValidationError(w, ErrMessageInvalidInput, map[string]string{"payload": "invalid json"}, http.StatusBadRequest)
		return in, false
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.HashTags = strings.TrimSpace(in.HashTags)
	in.Img = strings.TrimSpace(in.Img)

	if err := validate.Struct(in); err != nil {
		JSONValidationError(w, ErrMessageInvalidInput, validationFields(err), http.StatusBadRequest)
		return in, false
	}
	if h.Sanitizer == nil {
		return in, true
	}

	in.Title = h.Sanitizer.Plain(in.Title)
	in.Content = h.Sanitizer.Content(in.Content)
	in.HashTags = h.Sanitizer.Plain(in.HashTags)
	in.Img = h.Sanitizer.Plain(in.Img)

	if err := validate.Struct(in); err != nil {
		JSONValidationError(w, ErrMessageInvalidInput, validationFields(err), http.StatusBadRequest)
		return in, false
	}
	return in, true
}

func (h *BlogHandler) audit(ctx context.Context, userID int64, action string, blog *models.Blog, changed []string) {
	if h.Audit == nil {
		return
	}
	e := models.BlogAudit{UserID: userID, Action: action, BlogID: blog.ID, Title: blog.Title, Changed: changed}
	if err := h.Audit.Record(ctx, e); err != nil {
		slog.WarnContext(ctx, "blog audit failed", "action", action, "blog_id", blog.ID, "err", err)
	}
}

// canModify reports whether the caller may change blog.
func (h *BlogHandler) canModify(caller middleware.Identity, blog *models.Blog) bool {
	if !h.EnforceOwnership {
		return true
	}
	return caller.UserID == blog.AuthorID || caller.Role == models.RoleAdmin
}

//
// ==========================
// Create Blog
// ==========================
//

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, ErrMessageUnauthorized, http.StatusUnauthorized)
		return
	}

	in, ok := h.readInput(w, r)
	if !ok {
		metrics.RecordBlogOperation("create", "invalid")
		return
	}

	// The author is always the token's user, never something from the payload.
	author, err := h.Users.GetByID(r.Context(), caller.UserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		JSONError(w, ErrMessageUnauthorized, http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "create blog: resolve author", "user_id", caller.UserID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	blog := models.NewBlog(author, in.Title, in.Content, in.HashTags, in.Img, h.now())
	created, err := h.Service.Create(r.Context(), blog)
	if err != nil {
		slog.ErrorContext(r.Context(), "create blog", "user_id", caller.UserID, "err", err)
		metrics.RecordBlogOperation("create", "error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.audit(r.Context(), caller.UserID, models.AuditCreate, created, nil)
	metrics.RecordBlogOperation("create", "ok")

	view := created.View()
	writeJSON(w, http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: "Blog created Successfully",
		Blog:    &view,
	})
}

//
// ==========================
// Update Blog
// ==========================
//

func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, ErrMessageUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid blog id", http.StatusBadRequest)
		return
	}

	in, ok := h.readInput(w, r)
	if !ok {
		metrics.RecordBlogOperation("update", "invalid")
		return
	}

	blog, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "update blog: find", "blog_id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if blog == nil {
		metrics.RecordBlogOperation("update", "not_found")
		JSONError(w, ErrMessageNotFound, http.StatusNotFound)
		return
	}
	if !h.canModify(caller, blog) {
		metrics.RecordBlogOperation("update", "forbidden")
		JSONError(w, ErrMessageForbidden, http.StatusForbidden)
		return
	}

	// Likes, author and createdAt stay as loaded.
	before := *blog
	blog.Title = in.Title
	blog.Content = in.Content
	blog.HashTags = in.HashTags
	blog.Img = in.Img

	updated, err := h.Service.Update(r.Context(), blog)
	if errors.Is(err, repo.ErrBlogNotFound) {
		metrics.RecordBlogOperation("update", "not_found")
		JSONError(w, ErrMessageNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "update blog", "blog_id", id, "err", err)
		metrics.RecordBlogOperation("update", "error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.audit(r.Context(), caller.UserID, models.AuditUpdate, updated, models.ChangedFields(before, *updated))
	metrics.RecordBlogOperation("update", "ok")

	view := updated.View()
	writeJSON(w, http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: "Blog updated Successfully",
		Blog:    &view,
	})
}

//
// ==========================
// Delete Blog
// ==========================
//

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, ErrMessageUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid blog id", http.StatusBadRequest)
		return
	}

	blog, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "delete blog: find", "blog_id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if blog == nil {
		metrics.RecordBlogOperation("delete", "not_found")
		JSONError(w, ErrMessageNotFound, http.StatusNotFound)
		return
	}
	if !h.canModify(caller, blog) {
		metrics.RecordBlogOperation("delete", "forbidden")
		JSONError(w, ErrMessageForbidden, http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteByID(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "delete blog", "blog_id", id, "err", err)
		metrics.RecordBlogOperation("delete", "error")
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.audit(r.Context(), caller.UserID, models.AuditDelete, blog, nil)
	metrics.RecordBlogOperation("delete", "ok")
	JSONSuccess(w, "Blog deleted Successfully")
}

//
// ==========================
// List Blogs (public)
// ==========================
//

// ListBlogs serves GET /public/?q=&page=&limit=. Pages are 1-based.
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	p, ok := pageable(w, r)
	if !ok {
		return
	}

	page, err := h.Service.FindAll(r.Context(), q, p)
	if err != nil {
		slog.ErrorContext(r.Context(), "list blogs", "q", q, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeBlogPage(w, page)
}

//
// ==========================
// List Blogs By User (public)
// ==========================
//

// ListBlogsByUser serves GET /public/user/{id}?page=&limit=. Pages are 1-based.
func (h *BlogHandler) ListBlogsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	p, ok := pageable(w, r)
	if !ok {
		return
	}

	page, err := h.Service.FindByUserID(r.Context(), userID, p)
	if err != nil {
		slog.ErrorContext(r.Context(), "list blogs by user", "user_id", userID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeBlogPage(w, page)
}

func writeBlogPage(w http.ResponseWriter, page models.Page[models.Blog]) {
	views := models.MapPage(page, models.Blog.View)
	writeJSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Blogs: &views})
}
