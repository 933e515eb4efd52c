package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repos *repository.Repositories, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    repos.Users,
		sessions: repos.Sessions,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

type SignInResult struct {
	User  *models.User
	Token string
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	user := &models.User{Email: email, Password: string(hashedPassword)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("user already exists")
		}
		return nil, apperrors.Internal("create user", err)
	}
	return user, nil
}

// SignIn checks the credentials and opens a session for a freshly signed token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Internal("sign token", err)
	}

	if err := s.sessions.Create(ctx, &models.Session{UserID: user.ID, Token: tokenString}); err != nil {
		return nil, apperrors.Internal("create session", err)
	}
	return &SignInResult{User: user, Token: tokenString}, nil
}

// Authenticate returns the user id behind a bearer token. The token must be
// valid and still backed by a session.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (uint, error) {
	userID, err := s.parseToken(tokenString)
	if err != nil {
		return 0, apperrors.Unauthorized("invalid token")
	}

	session, err := s.sessions.FindByToken(ctx, tokenString)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.Unauthorized("session not found")
	}
	if err != nil {
		return 0, apperrors.Internal("find session", err)
	}
	if session.UserID != userID {
		return 0, apperrors.Unauthorized("session does not match token")
	}
	return userID, nil
}

func (s *AuthService) parseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, fmt.Errorf("token has no user id")
	}
	return uint(raw), nil
}
