package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	assert.NoError(t, VerifyPassword(hash, "hunter2"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
	assert.Error(t, VerifyPassword("not a bcrypt hash", "hunter2"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("hunter2", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
