// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shortwave/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies that issued tokens verify and carry claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "shortwave.test")

	token, err := service.GenerateAccessToken("user-1", "Ada", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "shortwave.test")

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-1", "Ada", "member", -time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("foreign_key", func(t *testing.T) {
		other := newTokenService(t, "shortwave.test")
		token, err := other.GenerateAccessToken("user-1", "Ada", "member", time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		token, err := newTokenService(t, "elsewhere").GenerateAccessToken("user-1", "Ada", "member", time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}

func TestSecureToken(t *testing.T) {
	a, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
	assert.Equal(t, sec.HashToken(a), sec.HashToken(a))
	assert.Len(t, sec.HashToken(a), 64)
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleMember))
}
