package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_CostBounds(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "10")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestPasswordHashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestPasswordPepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")

	t.Setenv("PASSWORD_PEPPER", "pepper-a")
	peppered, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := peppered.HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("pw", hash))

	t.Setenv("PASSWORD_PEPPER", "pepper-b")
	other, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.False(t, other.VerifyPassword("pw", hash))
}
