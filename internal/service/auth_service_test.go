package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newTestAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "John Doe", "John@Example.com", "password123")
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())
	assert.Equal(t, "john@example.com", user.Email, "email should be lowercased")
	assert.Empty(t, user.PasswordHash, "returned user must not carry the hash")

	stored, err := repo.GetByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash, "raw password must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	// Same address with different casing still conflicts.
	_, err = svc.Register(context.Background(), "John Clone", "JOHN@example.com", "password123")
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	users := 0
	for range repo.users {
		users++
	}
	assert.Equal(t, 1, users, "conflict must not create a second record")
}

func TestAuthService_LoginAndResolveToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "john@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	userID, err := svc.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID, "token must resolve to the user it was issued for")
}

func TestAuthService_LoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "john@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ResolveTokenInvalid(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "John Doe", "john@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.ResolveToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret.
	foreign := signTestToken(t, user.ID.Hex(), "some-other-secret", time.Now().Add(time.Hour))
	_, err = svc.ResolveToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Correctly signed but expired.
	expired := signTestToken(t, user.ID.Hex(), testJWTSecret, time.Now().Add(-time.Hour))
	_, err = svc.ResolveToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Correct signature but no user id claim.
	empty := signTestToken(t, "", testJWTSecret, time.Now().Add(time.Hour))
	_, err = svc.ResolveToken(empty)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func signTestToken(t *testing.T, userID, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
