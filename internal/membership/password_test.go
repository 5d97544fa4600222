// internal/membership/password_test.go
package membership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, salt, err := hashPassword("SecurePass123!")
	require.NoError(t, err)

	ok, err := verifyPassword("SecurePass123!", salt, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyPassword("wrong", salt, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordSaltsDiffer(t *testing.T) {
	hash1, salt1, err := hashPassword("same")
	require.NoError(t, err)
	hash2, salt2, err := hashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPasswordBadEncoding(t *testing.T) {
	_, err := verifyPassword("pass", "not-base64!!", "also-not-base64!!")
	assert.Error(t, err)
}
