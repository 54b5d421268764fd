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
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the auth endpoints need. *repo.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    UserStore
	Secret   []byte
	TokenTTL time.Duration
}

type registerInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=255"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Status string            `json:"status"`
	Token  string            `json:"token,omitempty"`
	User   models.PublicUser `json:"user"`
}

// ==========================
// Register (bcrypt hash, role USER)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := decodeJSON(r, &input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, ErrMessageInvalidInput, validationFields(err), http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.ErrorContext(r.Context(), "register: hash password", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(r.Context(), models.NewUser(input.Email, string(hash), input.Name))
	if errors.Is(err, repo.ErrEmailTaken) {
		JSONError(w, "email already registered", http.StatusConflict)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "register: create user", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncUsersRegistered()
	writeJSON(w, http.StatusCreated, authResponse{Status: StatusSuccess, User: user.Public()})
}

// ==========================
// Login (email + password, returns HS256 token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := decodeJSON(r, &input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, ErrMessageInvalidInput, validationFields(err), http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, repo.ErrUserNotFound) {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "login: lookup user", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := middleware.IssueToken(h.Secret, middleware.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, ttl)
	if err != nil {
		slog.ErrorContext(r.Context(), "login: sign token", "err", err)
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Status: StatusSuccess, Token: token, User: user.Public()})
}
