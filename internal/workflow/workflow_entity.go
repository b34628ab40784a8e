package workflow

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowLog is the append-only audit trail of a leave request. Rows are
// never updated or deleted; the unique (request_id, action, nonce) index
// makes retried transitions idempotent.
type WorkflowLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_workflow_logs_request;uniqueIndex:uq_workflow_logs_nonce"`

	Action     string `gorm:"type:varchar(40);not null;uniqueIndex:uq_workflow_logs_nonce"`
	FromStatus string `gorm:"type:varchar(20);not null"`
	ToStatus   string `gorm:"type:varchar(20);not null"`

	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorName string    `gorm:"type:varchar(150);not null"`
	ActorRole string    `gorm:"type:varchar(20);not null"`

	Comment  string `gorm:"type:text"`
	Metadata []byte `gorm:"type:jsonb"`
	Nonce    string `gorm:"type:varchar(64);not null;uniqueIndex:uq_workflow_logs_nonce"`

	CreatedAt time.Time `gorm:"index:idx_workflow_logs_request"`
}
