package models

import "time"

// Roles. Every account starts as RoleUser; RoleAdmin may edit any blog and read the audit log.
const RoleUser = "USER"
const RoleAdmin = "ADMIN"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the author profile embedded in responses. It has no password field.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// NewUser builds a user ready for insertion with the default role.
func NewUser(email, passwordHash, name string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         RoleUser,
	}
}

func (u *User) Public() PublicUser {
	if u == nil {
		return PublicUser{}
	}
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
