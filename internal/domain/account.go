package domain

import "time"

// Account is an authenticated user identity owning zero or more Tasks.
// The password is stored only as a bcrypt hash and must never appear in
// logs or rendered output.
type Account struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time

	Tasks []Task `gorm:"foreignKey:OwnerID"`
}
