package services

import (
	"context"
	"errors"
	"strings"

	"livepoll/internal/models"
	"livepoll/internal/storage"
	"livepoll/internal/utils"

	"github.com/go-playground/validator/v10"
)

const MinPasswordLength = 6

var validate = validator.New()

type UserService struct {
	store *storage.Store
}

func NewUserService(store *storage.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a regular account. The email is stored lower-cased.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = utils.CleanText(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, invalid("name is required")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, invalid("a valid email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, invalid("password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidLogin
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}
