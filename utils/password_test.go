package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("081234567890"))
	assert.True(t, ValidatePhoneNumber("+6281234567890"))
	assert.False(t, ValidatePhoneNumber("12345"))
	assert.False(t, ValidatePhoneNumber("0712345678"))
}
