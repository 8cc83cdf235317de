package service

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrMissingCredentials   = errors.New("All fields are required")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidToken         = errors.New("Invalid or expired token")
)

const tokenIssuer = "fitness-planner"

// --- Service Interface ---
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// AuthOptions configures token issuing and credential checks.
type AuthOptions struct {
	JWTSecret     string
	JWTExpiration time.Duration
	// VerifyPassword turns on the bcrypt check at login. Off, any password
	// is accepted for a known email.
	VerifyPassword bool
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	opts     AuthOptions
	log      logrus.FieldLogger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, opts AuthOptions, log logrus.FieldLogger) AuthService {
	if opts.JWTSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if opts.JWTExpiration <= 0 {
		opts.JWTExpiration = time.Hour
	}
	if !opts.VerifyPassword {
		log.Warn("Password verification is disabled: login accepts any password for a known email")
	}
	return &authService{userRepo: userRepo, opts: opts, log: log}
}

// Login looks the user up by email and issues a signed token.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	// 1. Basic Input Validation
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	// 2. Fetch user by email
	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("look up user: %w", err)
	}

	// 3. Credential check, only when enabled
	if s.opts.VerifyPassword {
		if !user.HasPassword() ||
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return "", nil, ErrAuthenticationFailed
		}
	} else {
		s.log.WithField("user_id", user.ID.Hex()).Warn("Login accepted without password verification")
	}

	// 4. Generate JWT
	token, err = GenerateToken(s.opts.JWTSecret, user.ID.Hex(), s.opts.JWTExpiration)
	if err != nil {
		s.log.WithError(err).Error("Token signing failed")
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUser loads the user identified by a hex id, without the password hash.
func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helpers ---

// TokenClaims is the JWT payload. Only the user id is carried.
type TokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID that expires after ttl.
func GenerateToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims. Every
// failure is reported as ErrInvalidToken wrapping the cause.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	// v4 accepts tokens without exp; ours always carry one.
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return claims, nil
}
