package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/repository"
)

// setupDB starts a throwaway Postgres container and migrates the schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("todo_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening gorm connection: %v", err)
	}
	if err := db.AutoMigrate(&domain.Account{}, &domain.Task{}); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

func createAccount(t *testing.T, accounts repository.AccountRepository, username string) *domain.Account {
	t.Helper()
	account := &domain.Account{Username: username, PasswordHash: "x"}
	if err := accounts.Create(account); err != nil {
		t.Fatalf("creating account %q: %v", username, err)
	}
	return account
}

func dateVal(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &parsed
}

func TestTaskRepositoryContract(t *testing.T) {
	db := setupDB(t)
	accounts := repository.NewGormAccountRepository(db)
	tasks := repository.NewGormTaskRepository(db)

	alice := createAccount(t, accounts, "alice")
	bob := createAccount(t, accounts, "bob")

	mid := &domain.Task{Title: "mid", Priority: 2, DueDate: dateVal(t, "2024-01-10"), OwnerID: alice.ID}
	first := &domain.Task{Title: "first", Priority: 1, DueDate: dateVal(t, "2024-02-01"), OwnerID: alice.ID}
	doneTask := &domain.Task{Title: "done", Priority: 1, DueDate: dateVal(t, "2024-01-01"), Done: true, OwnerID: alice.ID}
	undated := &domain.Task{Title: "undated", Priority: 2, OwnerID: alice.ID}
	for _, task := range []*domain.Task{mid, first, doneTask, undated} {
		if err := tasks.Create(task); err != nil {
			t.Fatalf("creating task %q: %v", task.Title, err)
		}
	}

	t.Run("list ordering with nulls last", func(t *testing.T) {
		got, err := tasks.ListByOwner(alice.ID, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []string{"first", "mid", "undated", "done"}
		if len(got) != len(want) {
			t.Fatalf("got %d tasks, want %d", len(got), len(want))
		}
		for i, title := range want {
			if got[i].Title != title {
				t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
			}
		}
	})

	t.Run("search is a case-sensitive substring", func(t *testing.T) {
		got, err := tasks.ListByOwner(alice.ID, "mi")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].Title != "mid" {
			t.Fatalf("search %q: got %v", "mi", got)
		}

		got, err = tasks.ListByOwner(alice.ID, "MID")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("search must be case-sensitive, matched %d tasks", len(got))
		}
	})

	t.Run("owner scoping", func(t *testing.T) {
		got, err := tasks.ListByOwner(bob.ID, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("bob sees %d of alice's tasks", len(got))
		}

		if _, err := tasks.FindOwned(mid.ID, bob.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("cross-owner find: got %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		found, err := tasks.FindOwned(undated.ID, alice.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		found.Done = true
		found.DueDate = dateVal(t, "2030-12-31")
		if err := tasks.Update(found); err != nil {
			t.Fatalf("update: %v", err)
		}

		reloaded, err := tasks.FindOwned(undated.ID, alice.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if !reloaded.Done || reloaded.DueDate == nil {
			t.Errorf("update not persisted: %+v", reloaded)
		}

		if err := tasks.Delete(undated.ID, alice.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := tasks.FindOwned(undated.ID, alice.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("find after delete: got %v, want ErrRecordNotFound", err)
		}
	})

	t.Run("username uniqueness", func(t *testing.T) {
		if err := accounts.Create(&domain.Account{Username: "alice", PasswordHash: "y"}); err == nil {
			t.Error("duplicate username must violate the unique index")
		}
	})
}
