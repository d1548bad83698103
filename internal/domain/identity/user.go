package identity

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleEditor  Role = "editor"
	RoleAuthor  Role = "author"
	RolePartner Role = "partner"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor, RolePartner:
		return true
	}
	return false
}

// CanEditContent reports whether the role may write posts and pages
func (r Role) CanEditContent() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleAuthor
}

// bcryptCost is exported to tests through SetBcryptCost
var bcryptCost = 12

// SetBcryptCost lowers hashing cost. Tests only.
func SetBcryptCost(cost int) {
	bcryptCost = cost
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// User can sign in to the admin API
type User struct {
	shared.TenantAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(tenantID uuid.UUID, username, email, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin, editor, author or partner")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            strings.TrimSpace(username),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:        hash,
		Role:                role,
		IsActive:            true,
	}, nil
}

// SetDisplayName sets the public author name
func (u *User) SetDisplayName(name string) {
	u.DisplayName = strings.TrimSpace(name)
	u.Touch()
}

// ChangePassword replaces the password after checking the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a plain password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stores the time of a successful sign in
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// Deactivate blocks sign in
func (u *User) Deactivate() {
	u.IsActive = false
	u.IncrementVersion()
}

// AuthorSlug is the value of %author% in permalinks
func (u *User) AuthorSlug() string {
	return strings.ToLower(u.Username)
}

// DisplayNameOrUsername returns the display name if set, otherwise the username
func (u *User) DisplayNameOrUsername() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
