package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Create inserts the request and its attachments through the bound
	// transaction so the submission audit entry lands atomically with it.
	Create(ctx context.Context, l *LeaveRequest) error

	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindByDepartmentAndStatus(ctx context.Context, department string, statuses []string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, statuses []string) ([]LeaveRequest, error)

	// UpdateStatus bumps the cached status with an optimistic version
	// check. Zero rows affected means another transition won the race.
	UpdateStatus(ctx context.Context, id, newStatus string, expectedVersion int) (int64, error)

	CountGroupedBy(ctx context.Context, column string) (map[string]int64, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

type execer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, requester_id, requester_name, department, leave_type,
	start_date, end_date, working_days, reason, status, version,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, NOW(), NOW())
`
	exec := r.execer()
	if _, err := exec.ExecContext(
		ctx, query,
		l.ID, l.RequesterID, l.RequesterName, l.Department, l.LeaveType,
		l.StartDate, l.EndDate, l.WorkingDays, l.Reason, l.Status,
	); err != nil {
		return err
	}

	attachmentQuery := `
INSERT INTO leave_attachments (id, leave_request_id, file_name, file_url, mime_type, uploaded_at)
VALUES ($1, $2, $3, $4, $5, NOW())
`
	for _, a := range l.Attachments {
		if _, err := exec.ExecContext(
			ctx, attachmentQuery,
			a.ID, l.ID, a.FileName, a.FileURL, a.MimeType,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByDepartmentAndStatus(ctx context.Context, department string, statuses []string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("department = ?", department).
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByStatus(ctx context.Context, statuses []string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, newStatus string, expectedVersion int) (int64, error) {
	query := `
UPDATE leave_requests
SET status = $2, version = version + 1, updated_at = NOW()
WHERE id = $1 AND version = $3
`
	res, err := r.execer().ExecContext(ctx, query, id, newStatus, expectedVersion)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) CountGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	// column comes from a fixed internal whitelist, never from user input
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Key] = r.Count
	}
	return result, nil
}
