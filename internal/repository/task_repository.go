package repository

import (
	"github.com/tevirein/todo-auth/internal/domain"

	"gorm.io/gorm"
)

// TaskRepository defines the interface for task data operations. Every
// lookup and mutation is scoped to an owner account; a task owned by a
// different account behaves as if it did not exist.
type TaskRepository interface {
	Create(task *domain.Task) error
	FindOwned(id, ownerID uint) (*domain.Task, error)
	ListByOwner(ownerID uint, search string) ([]domain.Task, error)
	Update(task *domain.Task) error
	Delete(id, ownerID uint) error
}

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM task repository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

// Create adds a new task to the database
func (r *gormTaskRepository) Create(task *domain.Task) error {
	result := r.db.Create(task)
	return result.Error
}

// FindOwned retrieves a task by ID, constrained to the given owner.
// Returns gorm.ErrRecordNotFound for both missing rows and rows owned by
// someone else.
func (r *gormTaskRepository) FindOwned(id, ownerID uint) (*domain.Task, error) {
	var task domain.Task
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&task)
	if result.Error != nil {
		return nil, result.Error
	}
	return &task, nil
}

// ListByOwner retrieves the owner's tasks, optionally filtered to titles
// containing search (raw LIKE pattern, case-sensitive, no escaping of
// wildcard characters). Sort order is fixed: incomplete before complete,
// then ascending priority, then ascending due date with missing dates last.
func (r *gormTaskRepository) ListByOwner(ownerID uint, search string) ([]domain.Task, error) {
	var tasks []domain.Task
	query := r.db.Where("owner_id = ?", ownerID)
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	result := query.Order("done ASC, priority ASC, due_date ASC NULLS LAST").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update persists all fields of an existing task
func (r *gormTaskRepository) Update(task *domain.Task) error {
	result := r.db.Save(task)
	return result.Error
}

// Delete permanently removes a task owned by the given account
func (r *gormTaskRepository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Task{})
	return result.Error
}
