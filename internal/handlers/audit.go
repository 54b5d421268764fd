package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/blogapi/internal/models"
)

// AuditLister reads the blog audit trail.
type AuditLister interface {
	List(ctx context.Context, blogID int64, limit, offset int) ([]models.BlogAudit, error)
}

// AuditHandler serves the blog audit trail. Mounted behind RequireRole(ADMIN).
type AuditHandler struct {
	Repo AuditLister
}

// ListAudit returns recorded blog changes, newest first.
// Query: blogId (optional), limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 50
	offset := 0
	var blogID int64
	if l := q.Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := q.Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}
	if b := q.Get("blogId"); b != "" {
		val, err := strconv.ParseInt(b, 10, 64)
		if err != nil || val <= 0 {
			JSONValidationError(w, ErrMessageInvalidInput, map[string]string{"blogId": "must be a positive integer"}, http.StatusBadRequest)
			return
		}
		blogID = val
	}

	entries, err := h.Repo.List(r.Context(), blogID, limit, offset)
	if err != nil {
		slog.ErrorContext(r.Context(), "list blog audit", "blog_id", blogID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  StatusSuccess,
		"entries": entries,
	})
}
