package service_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/repository/repositorytest"
	"github.com/tevirein/todo-auth/internal/service"
)

func newAuth(t *testing.T) (service.AuthService, *repositorytest.AccountRepository) {
	t.Helper()
	accounts := repositorytest.NewAccountRepository()
	return service.NewAuthService(accounts), accounts
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	account, err := auth.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("expected account to get an id")
	}

	got, err := auth.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != account.ID {
		t.Errorf("authenticated wrong account: got %d want %d", got.ID, account.ID)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	if _, err := auth.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown user", "bob", "s3cret"},
		{"both wrong", "bob", "wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Authenticate(ctx, tc.username, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	auth, accounts := newAuth(t)

	if _, err := auth.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "alice", "another")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("got %v, want ErrDuplicateUsername", err)
	}
	if accounts.Len() != 1 {
		t.Errorf("account count changed: got %d want 1", accounts.Len())
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	ctx := context.Background()
	auth, accounts := newAuth(t)

	for _, password := range []string{"", "a", "ab", "abc"} {
		_, err := auth.Register(ctx, "alice", password)
		if !errors.Is(err, domain.ErrWeakPassword) {
			t.Errorf("password %q: got %v, want ErrWeakPassword", password, err)
		}
	}
	if accounts.Len() != 0 {
		t.Fatalf("weak passwords must not create accounts, got %d", accounts.Len())
	}

	if _, err := auth.Register(ctx, "alice", "abcd"); err != nil {
		t.Errorf("4-character password should be accepted: %v", err)
	}
}

func TestPasswordStoredOnlyAsHash(t *testing.T) {
	ctx := context.Background()
	auth, accounts := newAuth(t)

	if _, err := auth.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := accounts.FindByUsername("alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAccountByIDStale(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	_, err := auth.AccountByID(ctx, 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
