package auth

import (
	"time"

	"github.com/google/uuid"
)

type UserAccount struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_accounts_employee"`
	Email        string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_user_accounts_email"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
