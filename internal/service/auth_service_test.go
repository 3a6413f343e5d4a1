package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/domain"
)

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	reg, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Sup3rSecret"})
	require.NoError(t, err)
	assert.NotZero(t, reg.User.ID)
	assert.Equal(t, domain.RoleUser, reg.User.Role)
	assert.NotEmpty(t, reg.AccessToken)
	// The stored hash is never the plaintext password.
	assert.NotContains(t, users.users["alice"].PasswordHash, "Sup3rSecret")

	login, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "Sup3rSecret"}, "10.0.0.1", "firefox")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "10.0.0.1", login.User.LastLoginIP)
	assert.Equal(t, "firefox", login.User.DeviceDetails)
	require.NotNil(t, login.User.LastLoginAt)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	users := newFakeUserRepo("alice")
	svc := NewAuthService(users, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Sup3rSecret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Sup3rSecret"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "Sup3rSecret"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestAuthService_VerifyToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	reg, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Sup3rSecret"})
	require.NoError(t, err)

	username, err := svc.VerifyToken(context.Background(), reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestAuthService_VerifyTokenRejections(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	reg, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "Sup3rSecret"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := forged.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		shortLived := NewAuthService(users, testSecret, -time.Minute)
		resp, err := shortLived.Login(context.Background(), LoginInput{Username: "alice", Password: "Sup3rSecret"}, "", "")
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), resp.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		delete(users.users, "alice")
		_, err := svc.VerifyToken(context.Background(), reg.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("Sup3rSecret")
	require.NoError(t, err)

	assert.True(t, verifyPassword("Sup3rSecret", hash))
	assert.False(t, verifyPassword("Sup3rSecret2", hash))
	assert.False(t, verifyPassword("Sup3rSecret", "malformed"))

	// A fresh salt gives a different encoding for the same password.
	again, err := hashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}
