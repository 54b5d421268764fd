package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/blogapi/internal/service"
	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageable reads page and limit query parameters. Pages are 1-based: an explicit
// page below 1 is rejected with a 400, which has already been written when ok is
// false. Missing or malformed values fall back to page 1 and service.DefaultLimit;
// the service clamps the rest.
func pageable(w http.ResponseWriter, r *http.Request) (p service.Pageable, ok bool) {
	p = service.Pageable{Page: 1, Limit: service.DefaultLimit}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 1 {
				JSONValidationError(w, ErrMessageInvalidInput, map[string]string{"page": "must be at least 1"}, http.StatusBadRequest)
				return p, false
			}
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	return p, true
}
