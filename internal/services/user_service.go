package services

import (
	"context"
	"errors"
	"time"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingUserFields  = errors.New("name, email and password are required")
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(r repository.UserRepository) *UserService {
	return &UserService{repo: r}
}

func (s *UserService) Register(ctx context.Context, name, email, password string, phone *string) (uint64, error) {
	if name == "" || email == "" || password == "" {
		return 0, ErrMissingUserFields
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}

	// Credentials are stored as-is for compatibility with the legacy user
	// table.
	u := &domain.User{
		Name:        name,
		Email:       email,
		Password:    password,
		PhoneNumber: phone,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingUserFields
	}

	u, err := s.repo.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
