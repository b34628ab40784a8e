package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	holidayerrors "github.com/naywayne90/arti-key-web/internal/holiday/errors"
)

// defaultCalendar is the fixed public holiday list (Côte d'Ivoire) seeded on
// first start. Movable feasts carry their estimated Gregorian date and are
// maintained per year through the API.
var defaultCalendar = []Holiday{
	{Name: "Jour de l'an", Date: date(2024, 1, 1), Recurring: true},
	{Name: "Lundi de Pâques", Date: date(2024, 4, 1)},
	{Name: "Fête du Travail", Date: date(2024, 5, 1), Recurring: true},
	{Name: "Lendemain de la Korité", Date: date(2024, 5, 9)},
	{Name: "Lundi de Pentecôte", Date: date(2024, 5, 20)},
	{Name: "Lendemain de la Tabaski", Date: date(2024, 6, 16)},
	{Name: "Fête de l'Indépendance", Date: date(2024, 8, 7), Recurring: true},
	{Name: "Assomption", Date: date(2024, 8, 15), Recurring: true},
	{Name: "Toussaint", Date: date(2024, 11, 1), Recurring: true},
	{Name: "Journée Nationale de la Paix", Date: date(2024, 11, 15), Recurring: true},
	{Name: "Noël", Date: date(2024, 12, 25), Recurring: true},
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	SeedDefaults(ctx context.Context) error

	// CountWorkingDays counts calendar days in [start, end] that are
	// neither weekend days nor listed holidays.
	CountWorkingDays(ctx context.Context, start, end time.Time) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        day,
		Description: req.Description,
		Recurring:   req.Recurring,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		if isUniqueViolation(err) {
			return HolidayResponse{}, holidayerrors.ErrHolidayExists
		}
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, h := range defaultCalendar {
		h.ID = uuid.New()
		if err := s.repo.Create(ctx, &h); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return err
		}
	}

	s.logger.Info("default holiday calendar seeded", zap.Int("count", len(defaultCalendar)))
	return nil
}

func (s *service) CountWorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	if start.After(end) {
		return 0, holidayerrors.ErrInvalidDateRange
	}

	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	fixed := make(map[string]bool, len(holidays))
	recurring := make(map[string]bool)
	for _, h := range holidays {
		if h.Recurring {
			recurring[h.Date.Format("01-02")] = true
			continue
		}
		fixed[h.Date.Format("2006-01-02")] = true
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if fixed[day.Format("2006-01-02")] || recurring[day.Format("01-02")] {
			continue
		}
		count++
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
		Recurring:   h.Recurring,
	}
}
