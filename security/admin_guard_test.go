package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminGuard_VerifyPlainKey(t *testing.T) {
	guard := NewAdminGuard("avatar2005", "")

	assert.True(t, guard.Verify("avatar2005"))
	assert.False(t, guard.Verify("wrong"))
	assert.False(t, guard.Verify(""))
}

func TestAdminGuard_VerifyBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	guard := NewAdminGuard("ignored-when-hash-set", string(hash))

	assert.True(t, guard.Verify("s3cret"))
	assert.False(t, guard.Verify("ignored-when-hash-set"))
	assert.False(t, guard.Verify(""))
}
