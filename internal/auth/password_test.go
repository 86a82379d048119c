package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("passwordOne")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	// The stored value must never be the plaintext.
	assert.NotEqual(t, "passwordOne", hash)

	// Hashing is salted: the same plaintext yields a different hash.
	other, err := HashPassword("passwordOne")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("passwordOne")
	assert.NoError(t, err)

	assert.True(t, CheckPassword("passwordOne", hash))
	assert.False(t, CheckPassword("passwordTwo", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("passwordOne", "not-a-hash"))
}
