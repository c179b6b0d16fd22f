package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "twilcox", SanitizeUsername("twilcox@example.com"))
	assert.Equal(t, "twilcox", SanitizeUsername("  TWilcox  "))
	assert.Equal(t, "twilcox", SanitizeUsername("twilcox"))
	assert.Equal(t, "", SanitizeUsername("   "))
}

func TestLocalAdminFallback(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("LDAP_SERVER", "")
	t.Setenv("LDAP_SECONDARY_SERVER", "")
	t.Setenv("LOCAL_ADMIN_USER", "Admin")
	t.Setenv("LOCAL_ADMIN_PASSWORD_HASH", string(hash))

	assert.True(t, Authenticate("admin", "hunter2"))
	assert.True(t, Authenticate("Admin@example.com", "hunter2"))
	assert.False(t, Authenticate("admin", "wrong"))
	assert.False(t, Authenticate("someone-else", "hunter2"))
	assert.False(t, Authenticate("admin", ""))
}

func TestLocalFallbackRejectsWhenUnconfigured(t *testing.T) {
	t.Setenv("LDAP_SERVER", "")
	t.Setenv("LDAP_SECONDARY_SERVER", "")
	t.Setenv("LOCAL_ADMIN_USER", "")
	t.Setenv("LOCAL_ADMIN_PASSWORD_HASH", "")

	assert.False(t, Authenticate("admin", "anything"))
}

func TestLookupUserFallsBackToDerivedValues(t *testing.T) {
	t.Setenv("LDAP_BIND_USER", "")
	t.Setenv("LDAP_BIND_PASSWORD", "")
	t.Setenv("LDAP_BASE_DN", "")
	t.Setenv("LDAP_DOMAIN", "example.com")

	info := LookupUser("TWilcox@example.com")
	assert.Equal(t, "twilcox", info.Username)
	assert.Equal(t, "twilcox", info.DisplayName)
	assert.Equal(t, "twilcox@example.com", info.Mail)
}
