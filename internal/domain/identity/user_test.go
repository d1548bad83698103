package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	SetBcryptCost(bcrypt.MinCost)
}

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("hashes password", func(t *testing.T) {
		u, err := NewUser(tenantID, "jane", "Jane@Example.com", "s3cret-pass", RoleEditor)
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong-pass"))
		assert.Equal(t, "jane@example.com", u.Email)
		assert.True(t, u.IsActive)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "jane", "jane@example.com", "short", RoleEditor)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8")
	})

	t.Run("rejects bad username", func(t *testing.T) {
		_, err := NewUser(tenantID, "j a", "jane@example.com", "s3cret-pass", RoleEditor)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "jane", "jane@example.com", "s3cret-pass", "owner")
		require.Error(t, err)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewUser(tenantID, "jane", "nope", "s3cret-pass", RoleAdmin)
		require.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	u, err := NewUser(uuid.New(), "jane", "jane@example.com", "s3cret-pass", RoleAuthor)
	require.NoError(t, err)

	assert.Error(t, u.ChangePassword("wrong-pass", "n3w-password"))
	require.NoError(t, u.ChangePassword("s3cret-pass", "n3w-password"))
	assert.True(t, u.VerifyPassword("n3w-password"))
}

func TestUser_RecordLogin(t *testing.T) {
	u, err := NewUser(uuid.New(), "jane", "jane@example.com", "s3cret-pass", RoleAuthor)
	require.NoError(t, err)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u.RecordLogin(at)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, at, *u.LastLoginAt)
}

func TestRole_CanEditContent(t *testing.T) {
	assert.True(t, RoleAdmin.CanEditContent())
	assert.True(t, RoleAuthor.CanEditContent())
	assert.False(t, RolePartner.CanEditContent())
}

func TestNewTenant(t *testing.T) {
	tenant, err := NewTenant("acme", "Acme Blog", "Blog.Acme.test")
	require.NoError(t, err)
	assert.Equal(t, "blog.acme.test", tenant.Domain)
	assert.True(t, tenant.IsActive())

	require.NoError(t, tenant.Suspend())
	assert.Error(t, tenant.Suspend())

	_, err = NewTenant("Bad Code", "x", "")
	assert.Error(t, err)
}
