package holiday

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_date"`
	Description string    `gorm:"type:text"`

	// Recurring holidays (e.g. New Year, Independence Day) match on
	// month/day every year; movable feasts are entered per year.
	Recurring bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
