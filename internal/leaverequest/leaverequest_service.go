package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/naywayne90/arti-key-web/internal/domain"
	leaverequesterrors "github.com/naywayne90/arti-key-web/internal/leaverequest/errors"
)

// WorkingDayCounter is satisfied by the holiday service.
type WorkingDayCounter interface {
	CountWorkingDays(ctx context.Context, start, end time.Time) (int, error)
}

// SubmissionRecorder appends the submission audit entry and queues the
// submission notification inside the creation transaction. Satisfied by the
// workflow service.
type SubmissionRecorder interface {
	RecordSubmission(ctx context.Context, tx *sql.Tx, req *LeaveRequest, actor domain.Actor) error
}

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error)
	ListForActor(ctx context.Context, actor domain.Actor) ([]LeaveRequestResponse, error)
	Statistics(ctx context.Context) (StatisticsResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	calendar WorkingDayCounter
	auditor  SubmissionRecorder
	statsSF  singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	calendar WorkingDayCounter,
	auditor SubmissionRecorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, calendar: calendar, auditor: auditor, logger: l}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request requested",
		zap.String("requester_id", actor.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	requesterUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequesterID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	if domain.AttachmentRequired(req.LeaveType) && len(req.Attachments) == 0 {
		s.logger.Warn("create leave request missing attachment",
			zap.String("leave_type", req.LeaveType),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrAttachmentRequired
	}

	workingDays, err := s.calendar.CountWorkingDays(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave request working days failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if workingDays == 0 {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNoWorkingDays
	}

	l := &LeaveRequest{
		ID:            uuid.New(),
		RequesterID:   requesterUUID,
		RequesterName: actor.DisplayName,
		Department:    actor.Department,
		LeaveType:     req.LeaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		WorkingDays:   workingDays,
		Reason:        req.Reason,
		Status:        domain.StatusSubmitted,
	}
	for _, a := range req.Attachments {
		l.Attachments = append(l.Attachments, LeaveAttachment{
			ID:       uuid.New(),
			FileName: a.FileName,
			FileURL:  a.FileURL,
			MimeType: a.MimeType,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	// Creation itself emits the submission audit entry, so an empty log
	// is never observable for a persisted request.
	if err := s.auditor.RecordSubmission(ctx, tx, l, actor); err != nil {
		s.logger.Error("create leave request submission audit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("request_id", l.ID.String()),
		zap.String("requester_id", actor.EmployeeID),
		zap.Int("working_days", workingDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveRequestResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if !visibleTo(actor, l) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotVisibleToActor
	}
	return mapToResponse(*l), nil
}

// ListForActor applies the role-based visibility rules: employees see their
// own requests, managers the submitted requests of their department, DGPEC
// and DG their respective pending queues. No match yields an empty list.
func (s *service) ListForActor(ctx context.Context, actor domain.Actor) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)

	switch actor.Role {
	case domain.RoleManager:
		requests, err = s.repo.FindByDepartmentAndStatus(ctx, actor.Department, []string{domain.StatusSubmitted})
	case domain.RoleDGPEC:
		requests, err = s.repo.FindByStatus(ctx, []string{domain.StatusPendingDGPEC})
	case domain.RoleDG:
		requests, err = s.repo.FindByStatus(ctx, []string{domain.StatusPendingDG})
	default:
		requests, err = s.repo.FindByRequester(ctx, actor.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) Statistics(ctx context.Context) (StatisticsResponse, error) {
	// Dashboard polling hits this hard; collapse concurrent recomputes.
	v, err, _ := s.statsSF.Do("leave_statistics", func() (any, error) {
		byStatus, err := s.repo.CountGroupedBy(ctx, "status")
		if err != nil {
			return nil, err
		}
		byType, err := s.repo.CountGroupedBy(ctx, "leave_type")
		if err != nil {
			return nil, err
		}
		byDepartment, err := s.repo.CountGroupedBy(ctx, "department")
		if err != nil {
			return nil, err
		}

		var total int64
		for _, n := range byStatus {
			total += n
		}
		return StatisticsResponse{
			Total:        total,
			ByStatus:     byStatus,
			ByType:       byType,
			ByDepartment: byDepartment,
		}, nil
	})
	if err != nil {
		return StatisticsResponse{}, err
	}
	return v.(StatisticsResponse), nil
}

func visibleTo(actor domain.Actor, l *LeaveRequest) bool {
	switch actor.Role {
	case domain.RoleDGPEC, domain.RoleDG:
		return true
	case domain.RoleManager:
		return l.Department == actor.Department || l.RequesterID.String() == actor.EmployeeID
	default:
		return l.RequesterID.String() == actor.EmployeeID
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            l.ID.String(),
		RequesterID:   l.RequesterID.String(),
		RequesterName: l.RequesterName,
		Department:    l.Department,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		WorkingDays:   l.WorkingDays,
		Reason:        l.Reason,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		LastUpdated:   l.UpdatedAt.Format(time.RFC3339),
	}
	for _, a := range l.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:       a.ID.String(),
			FileName: a.FileName,
			FileURL:  a.FileURL,
			MimeType: a.MimeType,
		})
	}
	return resp
}
