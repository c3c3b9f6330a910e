package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, user.ID)
	assert.Empty(t, user.PasswordHash)

	stored, err := users.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "alex@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@example.com", "password1")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(ctx, "A", "a@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "B", "a@example.com", "password2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "password1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@example.com", "password2"},
		{"unknown email", "b@example.com", "password1"},
		{"empty password", "a@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.Empty(t, token)
			assert.Nil(t, user)
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret, 0)
	ctx := context.Background()
	created, err := svc.Register(ctx, "A", "a@example.com", "password1")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUser(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNewAuthService_PanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(newFakeUserRepo(), "", time.Hour) })
}
