package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest's Status column is a materialized cache of the workflow log.
// It is only ever written through the workflow engine together with the
// matching audit entry; Version backs the optimistic check that serializes
// concurrent transitions on one request.
type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_requester"`
	RequesterName string    `gorm:"type:varchar(150);not null"`
	Department    string    `gorm:"type:varchar(100);not null;index:idx_leave_requests_department_status"`

	LeaveType   string    `gorm:"type:varchar(30);not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	WorkingDays int       `gorm:"not null"`
	Reason      string    `gorm:"type:text"`

	Status  string `gorm:"type:varchar(20);not null;default:'SUBMITTED';index:idx_leave_requests_department_status"`
	Version int    `gorm:"not null;default:0"`

	Attachments []LeaveAttachment `gorm:"foreignKey:LeaveRequestID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveAttachment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_attachments_request"`
	FileName       string    `gorm:"type:varchar(255);not null"`
	FileURL        string    `gorm:"type:text;not null"`
	MimeType       string    `gorm:"type:varchar(100)"`
	UploadedAt     time.Time
}
