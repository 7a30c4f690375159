// Package repositorytest provides in-memory implementations of the
// repository interfaces for service and handler tests. They mimic the
// storage contract of the GORM implementations, including the fixed list
// ordering and the raw substring search.
package repositorytest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/tevirein/todo-auth/internal/domain"
)

// AccountRepository is an in-memory repository.AccountRepository.
type AccountRepository struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[uint]domain.Account)}
}

func (r *AccountRepository) Create(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return gorm.ErrDuplicatedKey
		}
	}

	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	r.accounts[account.ID] = *account
	return nil
}

func (r *AccountRepository) FindByID(id uint) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (r *AccountRepository) FindByUsername(username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Username == username {
			found := account
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Len reports the number of stored accounts.
func (r *AccountRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// TaskRepository is an in-memory repository.TaskRepository.
type TaskRepository struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[uint]domain.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[uint]domain.Task)}
}

func (r *TaskRepository) Create(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) FindOwned(id, ownerID uint) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return &task, nil
}

func (r *TaskRepository) ListByOwner(ownerID uint, search string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(task.Title, search) {
			continue
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Done != b.Done {
			return !a.Done
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.ID < b.ID
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID < b.ID
	})
	return tasks, nil
}

func (r *TaskRepository) Update(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(id, ownerID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task, ok := r.tasks[id]; ok && task.OwnerID == ownerID {
		delete(r.tasks, id)
	}
	return nil
}

// Len reports the number of stored tasks across all owners.
func (r *TaskRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Get returns a stored task by id regardless of owner, for assertions.
func (r *TaskRepository) Get(id uint) (domain.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	return task, ok
}
