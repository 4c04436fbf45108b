package utils

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railcare/models"
)

func TestJWT_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &models.User{
		LoginID:    "ctrl1",
		Role:       models.RoleController,
		Department: sql.NullString{String: models.DeptCommercial, Valid: true},
	}

	token, err := GenerateJWT(user, secret, 1)
	require.NoError(t, err)

	actor, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "ctrl1", actor.LoginID)
	assert.Equal(t, models.RoleController, actor.Role)
	assert.Equal(t, models.DeptCommercial, actor.Department)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	user := &models.User{LoginID: "cust1", Role: models.RoleCustomer}

	token, err := GenerateJWT(user, []byte("secret-a"), 1)
	require.NoError(t, err)

	_, err = ParseJWT(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	user := &models.User{LoginID: "cust1", Role: models.RoleCustomer}

	token, err := GenerateJWT(user, []byte("secret"), -1)
	require.NoError(t, err)

	_, err = ParseJWT(token, []byte("secret"))
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	_, err := ParseJWT("not.a.token", []byte("secret"))
	assert.Error(t, err)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword("s3cret-pass", hash))
	assert.Error(t, CheckPassword("wrong-pass", hash))
}
