package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diegogit03/roleplay-api/internal/config"
	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type APITokenStore interface {
	Insert(ctx context.Context, userID int64, token string) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionResponse is the body of a successful login.
type SessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users  UserStore
	tokens APITokenStore
	cfg    *config.Config
}

func NewAuthService(users UserStore, tokens APITokenStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

// Login verifies the credentials and issues a token. The token is also stored
// so sign-out can revoke it before the JWT itself expires.
func (s *AuthService) Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusBadRequest, "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewBadRequest(http.StatusBadRequest, "invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Insert(ctx, user.ID, token); err != nil {
		return nil, err
	}

	return &SessionResponse{User: user, Token: token}, nil
}

// Logout revokes the presented token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Delete(ctx, token)
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	issuedAt := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.cfg.JWTExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
