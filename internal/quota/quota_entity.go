package quota

import (
	"time"

	"github.com/google/uuid"
)

// QuotaLedger tracks the per-employee, per-year, per-type balance.
// remaining_days is always total_days - used_days and is kept non-negative
// by the guarded SQL updates in the repository.
type QuotaLedger struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_quota_ledger_entry"`
	Year       int       `gorm:"not null;uniqueIndex:uq_quota_ledger_entry"`
	LeaveType  string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_quota_ledger_entry"`

	TotalDays int `gorm:"not null"`
	UsedDays  int `gorm:"not null;default:0"`

	LastUpdated time.Time `gorm:"autoUpdateTime"`
}

func (q QuotaLedger) RemainingDays() int {
	return q.TotalDays - q.UsedDays
}

// QuotaAdjustmentLog records explicit DGPEC adjustments. Append-only and
// kept separate from the workflow audit trail for compliance.
type QuotaAdjustmentLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_quota_adjustments_employee"`
	Year       int       `gorm:"not null"`
	LeaveType  string    `gorm:"type:varchar(30);not null"`

	Delta     int    `gorm:"not null"`
	Reason    string `gorm:"type:text;not null"`
	ActorID   uuid.UUID
	ActorName string `gorm:"type:varchar(150)"`

	CreatedAt time.Time
}
