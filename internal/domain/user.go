package domain

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// ValidEmail reports whether email passes the same `email` rule request bodies are validated with.
func ValidEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}

// Role is a user's access level. Promotion is one way: attendee to organizer.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser returns an attendee with the given name and email. ID is set by the repository on create.
func NewUser(name, email string, now time.Time) *User {
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Role:      RoleAttendee,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOrganizer reports whether the user holds the organizer role.
func (u *User) IsOrganizer() bool {
	return u != nil && u.Role == RoleOrganizer
}

// PublicUser is the projection of a User returned to clients.
// swagger:model PublicUser
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public returns the client facing projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NormalizeEmail trims and lower-cases an email address so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash, salt string) error
}

// PasswordResetRepository stores hashed one-time password reset codes.
type PasswordResetRepository interface {
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	Consume(ctx context.Context, email, codeHash string) (consumed bool, err error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// AuthService covers registration, login, role changes and password resets.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangeRole(ctx context.Context, targetUserID string) (*User, error)
	Me(ctx context.Context, userID string) (*User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
