package workflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naywayne90/arti-key-web/internal/domain"
	"github.com/naywayne90/arti-key-web/internal/events"
	"github.com/naywayne90/arti-key-web/internal/leaverequest"
	"github.com/naywayne90/arti-key-web/internal/messaging/kafka"
	"github.com/naywayne90/arti-key-web/internal/quota"
	quotaerrors "github.com/naywayne90/arti-key-web/internal/quota/errors"
	workflowerrors "github.com/naywayne90/arti-key-web/internal/workflow/errors"
)

//go:generate mockgen -source=workflow_service.go -destination=mock/workflow_service_mock.go -package=mock
type Service interface {
	// Transition applies one workflow action to a request. The audit
	// entry, the cached status, any quota side effect and the outbox
	// event commit in a single transaction.
	Transition(ctx context.Context, actor domain.Actor, requestID string, req TransitionRequest) (TransitionResponse, error)
	History(ctx context.Context, actor domain.Actor, requestID string) ([]WorkflowLogResponse, error)
	// State re-derives the status from the audit log next to the cached
	// column so operators can verify the two never diverge.
	State(ctx context.Context, actor domain.Actor, requestID string) (StateResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	leaveRepo leaverequest.Repository
	quotaRepo quota.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveRepo leaverequest.Repository,
	quotaRepo quota.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) *service {
	l := zap.L().Named("workflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		leaveRepo: leaveRepo,
		quotaRepo: quotaRepo,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Transition(ctx context.Context, actor domain.Actor, requestID string, req TransitionRequest) (TransitionResponse, error) {
	s.logger.Debug("workflow transition requested",
		zap.String("request_id", requestID),
		zap.String("action", req.Action),
		zap.String("actor_role", actor.Role),
		zap.String("nonce", req.Nonce),
	)

	rule, ok := LookupRule(req.Action)
	if !ok {
		return TransitionResponse{}, workflowerrors.ErrUnknownAction
	}
	if actor.Role != rule.Role {
		s.logger.Warn("workflow transition role mismatch",
			zap.String("request_id", requestID),
			zap.String("action", req.Action),
			zap.String("actor_role", actor.Role),
		)
		return TransitionResponse{}, workflowerrors.ErrRoleNotAllowed
	}
	if IsRejection(req.Action) && req.Comment == "" {
		return TransitionResponse{}, workflowerrors.ErrCommentRequired
	}
	if req.Action == domain.ActionDGPECQuotaAdjustment {
		if req.QuotaDelta == nil || *req.QuotaDelta == 0 {
			return TransitionResponse{}, workflowerrors.ErrQuotaDeltaRequired
		}
		if req.Comment == "" {
			return TransitionResponse{}, quotaerrors.ErrReasonRequired
		}
	}

	l, err := s.leaveRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransitionResponse{}, workflowerrors.ErrRequestNotFound
		}
		return TransitionResponse{}, err
	}

	if actor.Role == domain.RoleManager && l.Department != actor.Department {
		return TransitionResponse{}, workflowerrors.ErrNotManagerOfDepartment
	}

	// Idempotent retry: the same (request, action, nonce) never produces
	// a second audit entry, the applied result is returned instead.
	if prior, err := s.repo.FindByNonce(ctx, requestID, req.Action, req.Nonce); err == nil {
		s.logger.Info("workflow transition replayed",
			zap.String("request_id", requestID),
			zap.String("action", req.Action),
			zap.String("nonce", req.Nonce),
		)
		return TransitionResponse{
			RequestID:  requestID,
			Action:     prior.Action,
			FromStatus: prior.FromStatus,
			ToStatus:   prior.ToStatus,
			Replayed:   true,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TransitionResponse{}, err
	}

	if domain.IsTerminalStatus(l.Status) {
		return TransitionResponse{}, workflowerrors.ErrRequestTerminal
	}
	if l.Status != rule.From {
		return TransitionResponse{}, workflowerrors.ErrInvalidState
	}

	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return TransitionResponse{}, workflowerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("workflow transition begin tx failed", zap.Error(err))
		return TransitionResponse{}, err
	}
	defer tx.Rollback()

	metadata := map[string]any{}

	switch req.Action {
	case domain.ActionDGPECApproval:
		remaining, err := s.debitQuota(ctx, tx, l, req.Override)
		if err != nil {
			return TransitionResponse{}, err
		}
		metadata["debited_days"] = l.WorkingDays
		metadata["remaining_days"] = remaining
		if req.Override {
			metadata["override"] = true
		}
	case domain.ActionDGPECQuotaAdjustment:
		if err := s.adjustQuota(ctx, tx, l, actor, *req.QuotaDelta, req.Comment); err != nil {
			return TransitionResponse{}, err
		}
		metadata["quota_delta"] = *req.QuotaDelta
	}

	entry := &WorkflowLog{
		ID:         uuid.New(),
		RequestID:  l.ID,
		Action:     req.Action,
		FromStatus: rule.From,
		ToStatus:   rule.Next,
		ActorID:    actorUUID,
		ActorName:  actor.DisplayName,
		ActorRole:  actor.Role,
		Comment:    req.Comment,
		Nonce:      req.Nonce,
	}
	if len(metadata) > 0 {
		entry.Metadata, _ = json.Marshal(metadata)
	}

	if err := s.repo.WithTx(tx).Append(ctx, entry); err != nil {
		if isUniqueViolation(err) {
			// Lost the nonce race against a concurrent retry.
			return TransitionResponse{}, workflowerrors.ErrTransitionConflict
		}
		s.logger.Error("workflow audit append failed", zap.Error(err))
		return TransitionResponse{}, err
	}

	// The status write doubles as the optimistic check that serializes
	// concurrent transitions on one request, self-loop actions included.
	affected, err := s.leaveRepo.WithTx(tx).UpdateStatus(ctx, requestID, rule.Next, l.Version)
	if err != nil {
		s.logger.Error("workflow status update failed", zap.Error(err))
		return TransitionResponse{}, err
	}
	if affected == 0 {
		return TransitionResponse{}, workflowerrors.ErrTransitionConflict
	}

	if err := s.queueEvent(ctx, tx, l, entry); err != nil {
		s.logger.Error("workflow outbox enqueue failed", zap.Error(err))
		return TransitionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("workflow transition commit failed", zap.Error(err))
		return TransitionResponse{}, err
	}

	s.logger.Info("workflow transition applied",
		zap.String("request_id", requestID),
		zap.String("action", req.Action),
		zap.String("from_status", rule.From),
		zap.String("to_status", rule.Next),
		zap.String("actor_role", actor.Role),
	)
	return TransitionResponse{
		RequestID:  requestID,
		Action:     req.Action,
		FromStatus: rule.From,
		ToStatus:   rule.Next,
	}, nil
}

// RecordSubmission appends the submission audit entry and queues the
// submission event inside the request creation transaction. It implements
// the recorder interface the leave request service depends on.
func (s *service) RecordSubmission(ctx context.Context, tx *sql.Tx, l *leaverequest.LeaveRequest, actor domain.Actor) error {
	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return workflowerrors.ErrInvalidActorID
	}
	entry := &WorkflowLog{
		ID:         uuid.New(),
		RequestID:  l.ID,
		Action:     domain.ActionSubmission,
		FromStatus: domain.StatusSubmitted,
		ToStatus:   domain.StatusSubmitted,
		ActorID:    actorUUID,
		ActorName:  actor.DisplayName,
		ActorRole:  actor.Role,
		Comment:    l.Reason,
		Nonce:      uuid.NewString(),
	}
	if err := s.repo.WithTx(tx).Append(ctx, entry); err != nil {
		return err
	}
	return s.queueEvent(ctx, tx, l, entry)
}

func (s *service) History(ctx context.Context, actor domain.Actor, requestID string) ([]WorkflowLogResponse, error) {
	l, err := s.loadVisible(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByRequest(ctx, l.ID.String())
	if err != nil {
		return nil, err
	}

	resp := make([]WorkflowLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapLogToResponse(e)
	}
	return resp, nil
}

func (s *service) State(ctx context.Context, actor domain.Actor, requestID string) (StateResponse, error) {
	l, err := s.loadVisible(ctx, actor, requestID)
	if err != nil {
		return StateResponse{}, err
	}

	entries, err := s.repo.ListByRequest(ctx, l.ID.String())
	if err != nil {
		return StateResponse{}, err
	}

	derived := CurrentState(entries)
	if derived != l.Status {
		s.logger.Error("cached status diverged from audit log",
			zap.String("request_id", requestID),
			zap.String("cached", l.Status),
			zap.String("derived", derived),
		)
	}
	return StateResponse{
		RequestID:     requestID,
		DerivedStatus: derived,
		CachedStatus:  l.Status,
		Entries:       len(entries),
	}, nil
}

func (s *service) loadVisible(ctx context.Context, actor domain.Actor, requestID string) (*leaverequest.LeaveRequest, error) {
	l, err := s.leaveRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflowerrors.ErrRequestNotFound
		}
		return nil, err
	}

	switch actor.Role {
	case domain.RoleDGPEC, domain.RoleDG:
		return l, nil
	case domain.RoleManager:
		if l.Department == actor.Department || l.RequesterID.String() == actor.EmployeeID {
			return l, nil
		}
	default:
		if l.RequesterID.String() == actor.EmployeeID {
			return l, nil
		}
	}
	return nil, workflowerrors.ErrHistoryNotVisible
}

// debitQuota charges the request's working days against the requester's
// ledger for the start year. Returns the remaining balance after the debit
// for the audit metadata, or the pre-debit balance on underflow so the
// approver can decide on an override.
func (s *service) debitQuota(ctx context.Context, tx *sql.Tx, l *leaverequest.LeaveRequest, override bool) (int, error) {
	qtx := s.quotaRepo.WithTx(tx)
	employeeID := l.RequesterID.String()
	year := l.StartDate.Year()

	if err := qtx.EnsureEntry(ctx, employeeID, year, l.LeaveType, quota.BaseAllotment(l.LeaveType)); err != nil {
		return 0, err
	}

	affected, err := qtx.Debit(ctx, employeeID, year, l.LeaveType, l.WorkingDays, override)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		ledger, findErr := qtx.Find(ctx, employeeID, year, l.LeaveType)
		remaining := 0
		if findErr == nil {
			remaining = ledger.RemainingDays()
		}
		s.logger.Warn("workflow transition quota exceeded",
			zap.String("request_id", l.ID.String()),
			zap.Int("requested_days", l.WorkingDays),
			zap.Int("remaining_days", remaining),
		)
		return 0, quotaerrors.ErrQuotaExceeded.WithDetails(map[string]any{
			"remaining_days": remaining,
			"requested_days": l.WorkingDays,
		})
	}

	ledger, err := qtx.Find(ctx, employeeID, year, l.LeaveType)
	if err != nil {
		return 0, err
	}
	return ledger.RemainingDays(), nil
}

func (s *service) adjustQuota(ctx context.Context, tx *sql.Tx, l *leaverequest.LeaveRequest, actor domain.Actor, delta int, reason string) error {
	qtx := s.quotaRepo.WithTx(tx)
	employeeID := l.RequesterID.String()
	year := l.StartDate.Year()

	if err := qtx.EnsureEntry(ctx, employeeID, year, l.LeaveType, quota.BaseAllotment(l.LeaveType)); err != nil {
		return err
	}

	affected, err := qtx.ApplyAdjustment(ctx, employeeID, year, l.LeaveType, delta, false)
	if err != nil {
		return err
	}
	if affected == 0 {
		ledger, findErr := qtx.Find(ctx, employeeID, year, l.LeaveType)
		remaining := 0
		if findErr == nil {
			remaining = ledger.RemainingDays()
		}
		return quotaerrors.ErrAdjustmentUnderflow.WithDetails(map[string]any{
			"remaining_days": remaining,
		})
	}

	actorUUID, _ := uuid.Parse(actor.EmployeeID)
	return qtx.CreateAdjustmentLog(ctx, &quota.QuotaAdjustmentLog{
		ID:         uuid.New(),
		EmployeeID: l.RequesterID,
		Year:       year,
		LeaveType:  l.LeaveType,
		Delta:      delta,
		Reason:     reason,
		ActorID:    actorUUID,
		ActorName:  actor.DisplayName,
	})
}

func (s *service) queueEvent(ctx context.Context, tx *sql.Tx, l *leaverequest.LeaveRequest, entry *WorkflowLog) error {
	payload, err := json.Marshal(events.LeaveWorkflowEvent{
		EventType:     events.EventTypeWorkflowTransitioned,
		RequestID:     l.ID.String(),
		RequesterID:   l.RequesterID.String(),
		RequesterName: l.RequesterName,
		Department:    l.Department,
		LeaveType:     l.LeaveType,
		WorkingDays:   l.WorkingDays,
		Action:        entry.Action,
		NewStatus:     entry.ToStatus,
		ActorName:     entry.ActorName,
		ActorRole:     entry.ActorRole,
		Comment:       entry.Comment,
		Nonce:         entry.Nonce,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     l.ID.String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.EventTypeWorkflowTransitioned,
		Topic:         events.LeaveWorkflowTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func mapLogToResponse(e WorkflowLog) WorkflowLogResponse {
	resp := WorkflowLogResponse{
		ID:         e.ID.String(),
		RequestID:  e.RequestID.String(),
		Action:     e.Action,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorName:  e.ActorName,
		ActorRole:  e.ActorRole,
		Comment:    e.Comment,
		Timestamp:  e.CreatedAt.Format(time.RFC3339),
	}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &resp.Metadata)
	}
	return resp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
