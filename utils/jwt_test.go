package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := CreateAdminToken(42, "superadmin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "superadmin", claims.Role)
}

func TestValidateAdminTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := CreateAdminToken(1, "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ValidateAdminToken(token)
	assert.Error(t, err)
}

func TestValidateAdminTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateAdminToken("not.a.token")
	assert.Error(t, err)
}
