package workflow

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workflow_repo.go -destination=mock/workflow_repo_mock.go -package=mock

// Repository persists the audit trail. Append is the only write; there is
// deliberately no update or delete.
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, entry *WorkflowLog) error
	ListByRequest(ctx context.Context, requestID string) ([]WorkflowLog, error)
	FindByNonce(ctx context.Context, requestID, action, nonce string) (*WorkflowLog, error)
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

func (r *repository) Append(ctx context.Context, entry *WorkflowLog) error {
	query := `
INSERT INTO workflow_logs (
	id, request_id, action, from_status, to_status,
	actor_id, actor_name, actor_role, comment, metadata, nonce, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
`
	var metadata any
	if len(entry.Metadata) > 0 {
		metadata = entry.Metadata
	}
	_, err := r.execer().ExecContext(
		ctx, query,
		entry.ID, entry.RequestID, entry.Action, entry.FromStatus, entry.ToStatus,
		entry.ActorID, entry.ActorName, entry.ActorRole, entry.Comment, metadata, entry.Nonce,
	)
	return err
}

func (r *repository) ListByRequest(ctx context.Context, requestID string) ([]WorkflowLog, error) {
	var entries []WorkflowLog
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByNonce(ctx context.Context, requestID, action, nonce string) (*WorkflowLog, error) {
	var entry WorkflowLog
	err := r.db.WithContext(ctx).
		Where("request_id = ? AND action = ? AND nonce = ?", requestID, action, nonce).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
