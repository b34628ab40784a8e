package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naywayne90/arti-key-web/internal/domain"
	"github.com/naywayne90/arti-key-web/internal/employee"
	"github.com/naywayne90/arti-key-web/internal/events"
	notificationerrors "github.com/naywayne90/arti-key-web/internal/notification/errors"
)

const defaultListLimit = 50

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Actor) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, actor domain.Actor) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
	MarkAllRead(ctx context.Context, actor domain.Actor) error
	// Dispatch fans a workflow event out to the next responsible party,
	// or back to the requester on terminal and informational actions.
	Dispatch(ctx context.Context, event events.LeaveWorkflowEvent) error
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) List(ctx context.Context, actor domain.Actor) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, actor.EmployeeID, defaultListLimit)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context, actor domain.Actor) (UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, actor.EmployeeID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: count}, nil
}

func (s *service) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	affected, err := s.repo.MarkRead(ctx, id, actor.EmployeeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, actor domain.Actor) error {
	return s.repo.MarkAllRead(ctx, actor.EmployeeID)
}

func (s *service) Dispatch(ctx context.Context, event events.LeaveWorkflowEvent) error {
	recipients, err := s.resolveRecipients(ctx, event)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Warn("workflow event has no recipients",
			zap.String("request_id", event.RequestID),
			zap.String("action", event.Action),
		)
		return nil
	}

	title, body := composeMessage(event)
	requestID, _ := uuid.Parse(event.RequestID)

	for _, recipientID := range recipients {
		n := &Notification{
			// Deterministic per (event, recipient) so redelivery is a no-op.
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(event.Nonce+":"+recipientID.String())),
			RecipientID: recipientID,
			Title:       title,
			Body:        body,
			RequestID:   requestID,
			Action:      event.Action,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			return err
		}
	}

	s.logger.Info("workflow event dispatched",
		zap.String("request_id", event.RequestID),
		zap.String("action", event.Action),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func (s *service) resolveRecipients(ctx context.Context, event events.LeaveWorkflowEvent) ([]uuid.UUID, error) {
	switch event.Action {
	case domain.ActionSubmission:
		manager, err := s.employeeRepo.FindManagerOfDepartment(ctx, event.Department)
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{manager.ID}, nil

	case domain.ActionManagerApproval, domain.ActionDGReturnToDGPEC:
		return s.idsByRole(ctx, domain.RoleDGPEC)

	case domain.ActionDGPECApproval:
		return s.idsByRole(ctx, domain.RoleDG)

	default:
		// Rejections, final approval and quota adjustments go back to
		// the requester.
		requesterID, err := uuid.Parse(event.RequesterID)
		if err != nil {
			return nil, notificationerrors.ErrInvalidRecipientID
		}
		return []uuid.UUID{requesterID}, nil
	}
}

func (s *service) idsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	employees, err := s.employeeRepo.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids, nil
}

var leaveTypeLabels = map[string]string{
	domain.LeaveTypeAnnual:      "congé annuel",
	domain.LeaveTypeSick:        "congé maladie",
	domain.LeaveTypeBereavement: "congé décès",
	domain.LeaveTypeFamilyEvent: "événement familial",
	domain.LeaveTypeOther:       "congé exceptionnel",
}

func composeMessage(event events.LeaveWorkflowEvent) (title, body string) {
	label, ok := leaveTypeLabels[event.LeaveType]
	if !ok {
		label = "congé"
	}

	switch event.Action {
	case domain.ActionSubmission:
		title = "Nouvelle demande de congé"
		body = fmt.Sprintf("%s (%s) a soumis une demande de %s de %d jour(s).",
			event.RequesterName, event.Department, label, event.WorkingDays)
	case domain.ActionManagerApproval:
		title = "Demande validée par le manager"
		body = fmt.Sprintf("La demande de %s (%s, %d jour(s)) attend la validation DGPEC.",
			event.RequesterName, label, event.WorkingDays)
	case domain.ActionDGPECApproval:
		title = "Demande validée par la DGPEC"
		body = fmt.Sprintf("La demande de %s (%s, %d jour(s)) attend la décision de la DG.",
			event.RequesterName, label, event.WorkingDays)
	case domain.ActionDGApproval:
		title = "Demande de congé approuvée"
		body = fmt.Sprintf("Votre demande de %s de %d jour(s) a été approuvée par la DG.",
			label, event.WorkingDays)
	case domain.ActionManagerRejection, domain.ActionDGPECRejection, domain.ActionDGRejection:
		title = "Demande de congé rejetée"
		body = fmt.Sprintf("Votre demande de %s a été rejetée par %s. Motif : %s",
			label, event.ActorName, event.Comment)
	case domain.ActionDGReturnToDGPEC:
		title = "Demande renvoyée à la DGPEC"
		body = fmt.Sprintf("La DG a renvoyé la demande de %s à la DGPEC pour réexamen.",
			event.RequesterName)
	case domain.ActionDGPECQuotaAdjustment:
		title = "Ajustement de quota"
		body = fmt.Sprintf("Votre quota de %s a été ajusté par la DGPEC. Motif : %s",
			label, event.Comment)
	default:
		title = "Mise à jour de votre demande"
		body = fmt.Sprintf("Votre demande de %s est passée au statut %s.", label, event.NewStatus)
	}
	return title, body
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Body:      n.Body,
		Action:    n.Action,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RequestID != uuid.Nil {
		resp.RequestID = n.RequestID.String()
	}
	return resp
}
