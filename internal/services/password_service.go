package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/diegogit03/roleplay-api/internal/mail"
	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type LinkTokenStore interface {
	Upsert(ctx context.Context, userID int64, token string) error
	GetByToken(ctx context.Context, token string) (*models.LinkToken, error)
	Delete(ctx context.Context, id int64) error
}

type PasswordService struct {
	users    UserStore
	tokens   LinkTokenStore
	mailer   mail.Mailer
	tokenTTL time.Duration

	now func() time.Time
}

func NewPasswordService(users UserStore, tokens LinkTokenStore, mailer mail.Mailer, tokenTTL time.Duration) *PasswordService {
	return &PasswordService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Forgot issues a fresh reset token for the account, replacing any previous
// one, and mails the reset link. Exactly one mail goes out per call; delivery
// failure surfaces to the caller.
func (s *PasswordService) Forgot(ctx context.Context, email, resetPasswordURL string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "user not found")
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	if err := s.tokens.Upsert(ctx, user.ID, token); err != nil {
		return err
	}

	return s.mailer.SendPasswordReset(ctx, user.Email, user.Username, resetPasswordURL+"?token="+token)
}

// Reset consumes the token: the password is re-hashed and stored, then the
// token row is deleted so it can never be used twice. Tokens older than the
// TTL answer 410.
func (s *PasswordService) Reset(ctx context.Context, token, password string) error {
	linkToken, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "token not found")
		}
		return err
	}

	if s.now().Sub(linkToken.CreatedAt) > s.tokenTTL {
		return utils.NewTokenExpired()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, linkToken.UserID, string(hash)); err != nil {
		return err
	}

	return s.tokens.Delete(ctx, linkToken.ID)
}

func generateResetToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
