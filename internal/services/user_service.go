package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, email, username, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// UserUpdate carries the optional account fields of a profile update.
type UserUpdate struct {
	Email    string
	Avatar   *string
	Password string
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Create registers an account. Email is checked before username so the 409
// message names the first duplicate field.
func (s *UserService) Create(ctx context.Context, email, username, password string) (*models.User, error) {
	emailTaken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, utils.NewBadRequest(http.StatusConflict, "email already in use")
	}

	usernameTaken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, utils.NewBadRequest(http.StatusConflict, "username already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, email, username, string(hash))
}

// Update applies the provided fields; a new password is re-hashed before it
// is stored.
func (s *UserService) Update(ctx context.Context, id int64, update UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusNotFound, "user not found")
		}
		return nil, err
	}

	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Avatar != nil {
		user.Avatar = update.Avatar
	}
	if update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	return s.users.Update(ctx, user)
}
