package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// minPasswordLength is the only strength rule enforced at registration.
const minPasswordLength = 4

// AuthService manages account registration and credential checks. Session
// establishment itself lives in the web layer; this service only answers
// whether a credential pair maps to an account.
type AuthService interface {
	// Register creates a new account with a hashed password. It fails with
	// domain.ErrDuplicateUsername or domain.ErrWeakPassword. There is no
	// auto-login on success.
	Register(ctx context.Context, username, password string) (*domain.Account, error)

	// Authenticate returns the account matching the credentials, or
	// domain.ErrInvalidCredentials. Unknown usernames and wrong passwords
	// are indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)

	// AccountByID loads the account behind a session identity. Returns
	// domain.ErrNotFound for stale ids.
	AccountByID(ctx context.Context, id uint) (*domain.Account, error)
}

type authService struct {
	accounts repository.AccountRepository
}

// NewAuthService creates a new instance of authService.
func NewAuthService(accounts repository.AccountRepository) AuthService {
	return &authService{accounts: accounts}
}

func (s *authService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	_, err := s.accounts.FindByUsername(username)
	if err == nil {
		return nil, domain.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up username: %w", err)
	}

	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return account, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func (s *authService) AccountByID(ctx context.Context, id uint) (*domain.Account, error) {
	account, err := s.accounts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("looking up account %d: %w", id, err)
	}
	return account, nil
}
