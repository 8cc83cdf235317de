package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/logging"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           primitive.NewObjectID(),
		Name:         "Alex",
		Email:        "alex@example.com",
		PasswordHash: string(hash),
	}
}

func TestLogin(t *testing.T) {
	user := newTestUser(t, "correct-horse")

	t.Run("any password when verification is off", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(user), AuthOptions{JWTSecret: testSecret}, logging.Discard())

		token, got, err := svc.Login(context.Background(), "alex@example.com", "whatever")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.PasswordHash)

		claims, err := ParseToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
		assert.Equal(t, user.ID.Hex(), claims.Subject)
	})

	t.Run("bcrypt check when verification is on", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(user),
			AuthOptions{JWTSecret: testSecret, VerifyPassword: true}, logging.Discard())

		_, _, err := svc.Login(context.Background(), "alex@example.com", "wrong")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)

		token, _, err := svc.Login(context.Background(), "alex@example.com", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(user), AuthOptions{JWTSecret: testSecret}, logging.Discard())

		_, _, err := svc.Login(context.Background(), "", "pw")
		assert.ErrorIs(t, err, ErrMissingCredentials)
		_, _, err = svc.Login(context.Background(), "alex@example.com", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(user), AuthOptions{JWTSecret: testSecret}, logging.Discard())

		_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := newFakeUserRepo(user)
		repo.err = errors.New("connection refused")
		svc := NewAuthService(repo, AuthOptions{JWTSecret: testSecret}, logging.Discard())

		_, _, err := svc.Login(context.Background(), "alex@example.com", "pw")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestNewAuthService_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(newFakeUserRepo(), AuthOptions{}, logging.Discard())
	})
}

func TestGetUser(t *testing.T) {
	user := newTestUser(t, "pw")
	svc := NewAuthService(newFakeUserRepo(user), AuthOptions{JWTSecret: testSecret}, logging.Discard())

	got, err := svc.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetUser(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), "xyz")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestParseToken(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("valid", func(t *testing.T) {
		token, err := GenerateToken(testSecret, userID, time.Hour)
		require.NoError(t, err)
		claims, err := ParseToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("other-secret", userID, time.Hour)
		require.NoError(t, err)
		_, err = ParseToken(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken(testSecret, userID, -time.Minute)
		require.NoError(t, err)
		_, err = ParseToken(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(testSecret, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &TokenClaims{UserID: userID}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = ParseToken(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &TokenClaims{UserID: userID}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ParseToken(testSecret, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestListPlans(t *testing.T) {
	owner := primitive.NewObjectID()
	repo := &fakePlanRepo{}
	_, err := repo.Create(context.Background(), &domain.Plan{UserID: owner, Name: "first"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &domain.Plan{UserID: primitive.NewObjectID(), Name: "other"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &domain.Plan{UserID: owner, Name: "second"})
	require.NoError(t, err)

	svc := NewPlanService(repo)

	plans, err := svc.ListPlans(context.Background(), owner.Hex())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "second", plans[0].Name)
	assert.Equal(t, "first", plans[1].Name)

	plans, err = svc.ListPlans(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)

	_, err = svc.ListPlans(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}
