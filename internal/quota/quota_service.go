package quota

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naywayne90/arti-key-web/internal/domain"
	quotaerrors "github.com/naywayne90/arti-key-web/internal/quota/errors"
)

// Base allotments in working days, granted lazily the first time a ledger
// entry is touched for a given year.
var baseAllotments = map[string]int{
	domain.LeaveTypeAnnual:      30,
	domain.LeaveTypeSick:        15,
	domain.LeaveTypeBereavement: 5,
	domain.LeaveTypeFamilyEvent: 5,
	domain.LeaveTypeOther:       0,
}

// BaseAllotment returns the default total for a leave type.
func BaseAllotment(leaveType string) int {
	return baseAllotments[leaveType]
}

//go:generate mockgen -source=quota_service.go -destination=mock/quota_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, employeeID string, year int, leaveType string) (BalanceResponse, error)
	ListBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	Adjust(ctx context.Context, actor domain.Actor, req AdjustQuotaRequest) (BalanceResponse, error)
	ListAdjustments(ctx context.Context, employeeID string, year int) ([]AdjustmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("quota.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetBalance(ctx context.Context, employeeID string, year int, leaveType string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, quotaerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.EnsureEntry(ctx, employeeID, year, leaveType, BaseAllotment(leaveType)); err != nil {
		s.logger.Error("ensure ledger entry failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	entry, err := s.repo.Find(ctx, employeeID, year, leaveType)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapToBalance(*entry), nil
}

func (s *service) ListBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, quotaerrors.ErrInvalidEmployeeID
	}

	for leaveType, base := range baseAllotments {
		if err := s.repo.EnsureEntry(ctx, employeeID, year, leaveType, base); err != nil {
			return nil, err
		}
	}

	entries, err := s.repo.FindAllForYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(entries))
	for i, entry := range entries {
		resp[i] = mapToBalance(entry)
	}
	return resp, nil
}

func (s *service) Adjust(ctx context.Context, actor domain.Actor, req AdjustQuotaRequest) (BalanceResponse, error) {
	s.logger.Debug("quota adjustment requested",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.String("leave_type", req.LeaveType),
		zap.Int("delta", req.Delta),
		zap.String("actor_id", actor.UserID),
	)

	if req.Reason == "" {
		return BalanceResponse{}, quotaerrors.ErrReasonRequired
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, quotaerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return BalanceResponse{}, quotaerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("quota adjustment begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.EnsureEntry(ctx, req.EmployeeID, req.Year, req.LeaveType, BaseAllotment(req.LeaveType)); err != nil {
		return BalanceResponse{}, err
	}

	affected, err := qtx.ApplyAdjustment(ctx, req.EmployeeID, req.Year, req.LeaveType, req.Delta, req.Override)
	if err != nil {
		s.logger.Error("quota adjustment persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	if affected == 0 {
		entry, findErr := qtx.Find(ctx, req.EmployeeID, req.Year, req.LeaveType)
		if findErr != nil {
			return BalanceResponse{}, findErr
		}
		s.logger.Warn("quota adjustment underflow rejected",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("remaining_days", entry.RemainingDays()),
		)
		return BalanceResponse{}, quotaerrors.ErrAdjustmentUnderflow.WithDetails(map[string]any{
			"remaining_days": entry.RemainingDays(),
		})
	}

	logEntry := &QuotaAdjustmentLog{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Year:       req.Year,
		LeaveType:  req.LeaveType,
		Delta:      req.Delta,
		Reason:     req.Reason,
		ActorID:    actorUUID,
		ActorName:  actor.DisplayName,
	}
	if err := qtx.CreateAdjustmentLog(ctx, logEntry); err != nil {
		s.logger.Error("quota adjustment log persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	entry, err := qtx.Find(ctx, req.EmployeeID, req.Year, req.LeaveType)
	if err != nil {
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("quota adjustment commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("quota adjusted",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("delta", req.Delta),
		zap.Int("remaining_days", entry.RemainingDays()),
	)
	return mapToBalance(*entry), nil
}

func (s *service) ListAdjustments(ctx context.Context, employeeID string, year int) ([]AdjustmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, quotaerrors.ErrInvalidEmployeeID
	}

	entries, err := s.repo.ListAdjustments(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]AdjustmentResponse, len(entries))
	for i, entry := range entries {
		resp[i] = AdjustmentResponse{
			ID:         entry.ID.String(),
			EmployeeID: entry.EmployeeID.String(),
			Year:       entry.Year,
			LeaveType:  entry.LeaveType,
			Delta:      entry.Delta,
			Reason:     entry.Reason,
			ActorID:    entry.ActorID.String(),
			ActorName:  entry.ActorName,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func mapToBalance(entry QuotaLedger) BalanceResponse {
	return BalanceResponse{
		EmployeeID:    entry.EmployeeID.String(),
		Year:          entry.Year,
		LeaveType:     entry.LeaveType,
		TotalDays:     entry.TotalDays,
		UsedDays:      entry.UsedDays,
		RemainingDays: entry.RemainingDays(),
		LastUpdated:   entry.LastUpdated.Format(time.RFC3339),
	}
}
