package repo

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a free-text query into an ILIKE substring pattern,
// escaping LIKE metacharacters. An empty query yields "%%", which matches everything.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
