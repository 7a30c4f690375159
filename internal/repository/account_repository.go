package repository

import (
	"github.com/tevirein/todo-auth/internal/domain"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(account *domain.Account) error
	FindByID(id uint) (*domain.Account, error)
	FindByUsername(username string) (*domain.Account, error)
}

// gormAccountRepository implements AccountRepository using GORM
type gormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository
func NewGormAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

// Create adds a new account to the database
func (r *gormAccountRepository) Create(account *domain.Account) error {
	result := r.db.Create(account)
	return result.Error
}

// FindByID retrieves an account by its ID
func (r *gormAccountRepository) FindByID(id uint) (*domain.Account, error) {
	var account domain.Account
	result := r.db.First(&account, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &account, nil
}

// FindByUsername retrieves an account by its unique username
func (r *gormAccountRepository) FindByUsername(username string) (*domain.Account, error) {
	var account domain.Account
	result := r.db.Where("username = ?", username).First(&account)
	if result.Error != nil {
		return nil, result.Error
	}
	return &account, nil
}
