package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message materialized from a workflow event.
// The ID is derived from the event nonce and the recipient, so redelivered
// events insert the same row and the duplicate is dropped on conflict.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`

	Title string `gorm:"type:varchar(200);not null"`
	Body  string `gorm:"type:text;not null"`

	RequestID uuid.UUID `gorm:"type:uuid"`
	Action    string    `gorm:"type:varchar(40)"`

	Read      bool `gorm:"not null;default:false;index:idx_notifications_recipient"`
	CreatedAt time.Time
}
