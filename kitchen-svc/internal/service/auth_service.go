package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud-kitchen/kitchen-svc/internal/domain"
	"cloud-kitchen/session"

	"golang.org/x/crypto/bcrypt"
)

const maxPasswordBytes = 72

type AuthService struct {
	repo     UserRepository
	hashCost int
}

func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo, hashCost: bcrypt.DefaultCost}
}

// Register creates a customer account. Emails are compared lower-cased.
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in.Email, in.Password, in.Name, session.RoleCustomer)
}

func (s *AuthService) createUser(ctx context.Context, email, password string, name *string, role string) (*domain.User, error) {
	// bcrypt reads at most 72 bytes; validator limits count runes.
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", "password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in domain.LoginInput) (*domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, userID int) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// EnsureAdmin creates the configured admin account when it does not exist
// yet. An existing account is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	name := "Administrator"
	if _, err := s.createUser(ctx, email, password, &name, session.RoleAdmin); err != nil && !errors.Is(err, domain.ErrEmailTaken) {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.InfoContext(ctx, "admin account created", "email", email)
	return nil
}
