package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := service.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, service.VerifyPassword(hash, "hunter22"))
	assert.ErrorIs(t, service.VerifyPassword(hash, "hunter23"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestPasswordService_DefaultCost(t *testing.T) {
	service := NewPasswordService().(*passwordService)
	assert.Equal(t, 12, service.cost)
}
