package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tevirein/todo-auth/internal/domain"
	"github.com/tevirein/todo-auth/internal/repository"

	"gorm.io/gorm"
)

// AddTaskRequest holds the data needed to create a new task. The web layer
// has already trimmed the title and parsed priority and due date from their
// form representations.
type AddTaskRequest struct {
	Title    string
	Priority int
	DueDate  *time.Time
}

// UpdateTaskRequest holds a partial update. Nil fields are left untouched;
// ClearDueDate removes the deadline. DueDate and ClearDueDate are mutually
// exclusive.
type UpdateTaskRequest struct {
	Title        *string
	Priority     *int
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskService defines the operations for managing tasks. Every method is
// scoped to an owner account id supplied by the caller; tasks belonging to
// other accounts are reported as domain.ErrNotFound.
type TaskService interface {
	// List returns the owner's tasks, filtered to titles containing search
	// when it is non-empty, in the fixed display order: incomplete first,
	// then ascending priority, then ascending due date with undated tasks
	// last.
	List(ctx context.Context, ownerID uint, search string) ([]domain.Task, error)

	// Add creates a new incomplete task for the owner.
	Add(ctx context.Context, ownerID uint, req AddTaskRequest) (*domain.Task, error)

	// Update applies the provided fields to an existing task.
	Update(ctx context.Context, ownerID, id uint, req UpdateTaskRequest) (*domain.Task, error)

	// ToggleDone flips the completion flag.
	ToggleDone(ctx context.Context, ownerID, id uint) (*domain.Task, error)

	// Delete permanently removes a task.
	Delete(ctx context.Context, ownerID, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new instance of taskService.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) List(ctx context.Context, ownerID uint, search string) ([]domain.Task, error) {
	tasks, err := s.repo.ListByOwner(ownerID, search)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Add(ctx context.Context, ownerID uint, req AddTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	priority := req.Priority
	if priority == 0 {
		priority = domain.DefaultPriority
	}

	task := &domain.Task{
		Title:    title,
		Done:     false,
		Priority: priority,
		DueDate:  req.DueDate,
		OwnerID:  ownerID,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, ownerID, id uint, req UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			task.Title = title
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	switch {
	case req.ClearDueDate:
		task.DueDate = nil
	case req.DueDate != nil:
		task.DueDate = req.DueDate
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	return task, nil
}

func (s *taskService) ToggleDone(ctx context.Context, ownerID, id uint) (*domain.Task, error) {
	task, err := s.findOwned(id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Done = !task.Done
	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("toggling task %d: %w", id, err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id uint) error {
	if _, err := s.findOwned(id, ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(id, ownerID); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

func (s *taskService) findOwned(id, ownerID uint) (*domain.Task, error) {
	task, err := s.repo.FindOwned(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching task %d: %w", id, err)
	}
	return task, nil
}
