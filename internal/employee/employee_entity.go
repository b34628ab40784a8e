package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(150);not null"`
	Email    string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`

	Department string `gorm:"type:varchar(100);not null;index:idx_employees_department"`
	Role       string `gorm:"type:varchar(20);not null;default:'employee'"`
	Position   string `gorm:"type:varchar(100)"`

	ManagerID *uuid.UUID `gorm:"type:uuid"`
	Active    bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
