package domain

import "time"

// Task is a to-do item belonging to exactly one Account. DueDate is a
// calendar date; nil means no deadline. Priority runs 1 (high) to 3 (low)
// by convention, but no range is enforced beyond what callers supply.
type Task struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"size:100;not null"`
	Done      bool       `gorm:"not null;default:false"`
	Priority  int        `gorm:"not null;default:3"`
	DueDate   *time.Time `gorm:"type:date"`
	CreatedAt time.Time
	OwnerID   uint `gorm:"not null;index"`
}

// DefaultPriority is used when a task is created without one.
const DefaultPriority = 3
