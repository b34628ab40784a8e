package quota

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=quota_repo.go -destination=mock/quota_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// EnsureEntry lazily creates the ledger row with the base allotment.
	// Safe to call concurrently, the upsert is a no-op when the row exists.
	EnsureEntry(ctx context.Context, employeeID string, year int, leaveType string, baseTotal int) error

	Find(ctx context.Context, employeeID string, year int, leaveType string) (*QuotaLedger, error)
	FindAllForYear(ctx context.Context, employeeID string, year int) ([]QuotaLedger, error)

	// Debit increments used_days by days. Without override the update is
	// guarded so remaining days cannot go negative; callers detect a
	// rejected debit through the zero rows-affected return.
	Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, override bool) (int64, error)

	// ApplyAdjustment changes total_days by delta under the same guard.
	ApplyAdjustment(ctx context.Context, employeeID string, year int, leaveType string, delta int, override bool) (int64, error)

	CreateAdjustmentLog(ctx context.Context, entry *QuotaAdjustmentLog) error
	ListAdjustments(ctx context.Context, employeeID string, year int) ([]QuotaAdjustmentLog, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) conn() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) EnsureEntry(ctx context.Context, employeeID string, year int, leaveType string, baseTotal int) error {
	query := `
INSERT INTO quota_ledgers (id, employee_id, year, leave_type, total_days, used_days, last_updated)
VALUES (gen_random_uuid(), $1, $2, $3, $4, 0, NOW())
ON CONFLICT (employee_id, year, leave_type) DO NOTHING
`
	_, err := r.conn().ExecContext(ctx, query, employeeID, year, leaveType, baseTotal)
	return err
}

func (r *repository) Find(ctx context.Context, employeeID string, year int, leaveType string) (*QuotaLedger, error) {
	query := `
SELECT id, employee_id, year, leave_type, total_days, used_days, last_updated
FROM quota_ledgers
WHERE employee_id = $1 AND year = $2 AND leave_type = $3
`
	var entry QuotaLedger
	err := r.conn().QueryRowContext(ctx, query, employeeID, year, leaveType).Scan(
		&entry.ID,
		&entry.EmployeeID,
		&entry.Year,
		&entry.LeaveType,
		&entry.TotalDays,
		&entry.UsedDays,
		&entry.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) FindAllForYear(ctx context.Context, employeeID string, year int) ([]QuotaLedger, error) {
	query := `
SELECT id, employee_id, year, leave_type, total_days, used_days, last_updated
FROM quota_ledgers
WHERE employee_id = $1 AND year = $2
ORDER BY leave_type ASC
`
	rows, err := r.conn().QueryContext(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []QuotaLedger
	for rows.Next() {
		var entry QuotaLedger
		if err := rows.Scan(
			&entry.ID,
			&entry.EmployeeID,
			&entry.Year,
			&entry.LeaveType,
			&entry.TotalDays,
			&entry.UsedDays,
			&entry.LastUpdated,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *repository) Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, override bool) (int64, error) {
	query := `
UPDATE quota_ledgers
SET used_days = used_days + $4, last_updated = NOW()
WHERE employee_id = $1 AND year = $2 AND leave_type = $3
  AND ($5 OR total_days - used_days >= $4)
`
	res, err := r.conn().ExecContext(ctx, query, employeeID, year, leaveType, days, override)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ApplyAdjustment(ctx context.Context, employeeID string, year int, leaveType string, delta int, override bool) (int64, error) {
	query := `
UPDATE quota_ledgers
SET total_days = total_days + $4, last_updated = NOW()
WHERE employee_id = $1 AND year = $2 AND leave_type = $3
  AND ($5 OR total_days + $4 - used_days >= 0)
`
	res, err := r.conn().ExecContext(ctx, query, employeeID, year, leaveType, delta, override)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) CreateAdjustmentLog(ctx context.Context, entry *QuotaAdjustmentLog) error {
	query := `
INSERT INTO quota_adjustment_logs (
	id, employee_id, year, leave_type, delta, reason, actor_id, actor_name, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
`
	_, err := r.conn().ExecContext(
		ctx, query,
		entry.ID, entry.EmployeeID, entry.Year, entry.LeaveType,
		entry.Delta, entry.Reason, entry.ActorID, entry.ActorName,
	)
	return err
}

func (r *repository) ListAdjustments(ctx context.Context, employeeID string, year int) ([]QuotaAdjustmentLog, error) {
	query := `
SELECT id, employee_id, year, leave_type, delta, reason, actor_id, actor_name, created_at
FROM quota_adjustment_logs
WHERE employee_id = $1 AND year = $2
ORDER BY created_at ASC
`
	rows, err := r.conn().QueryContext(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []QuotaAdjustmentLog
	for rows.Next() {
		var entry QuotaAdjustmentLog
		if err := rows.Scan(
			&entry.ID,
			&entry.EmployeeID,
			&entry.Year,
			&entry.LeaveType,
			&entry.Delta,
			&entry.Reason,
			&entry.ActorID,
			&entry.ActorName,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
