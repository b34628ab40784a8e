package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/naywayne90/arti-key-web/internal/auth/errors"
	"github.com/naywayne90/arti-key-web/internal/employee"
)

const tokenTTL = 8 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login account lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", req.Email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	emp, err := s.employeeRepo.FindByID(ctx, account.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if !emp.Active {
		return LoginResponse{}, autherrors.ErrAccountDisabled
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":      account.ID.String(),
		"employee_id":  emp.ID.String(),
		"display_name": emp.FullName,
		"role":         emp.Role,
		"department":   emp.Department,
		"iat":          now.Unix(),
		"exp":          now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("login token signing failed", zap.Error(err))
		return LoginResponse{}, err
	}

	_ = s.repo.TouchLastLogin(ctx, account.ID.String(), now)

	s.logger.Info("login success",
		zap.String("user_id", account.ID.String()),
		zap.String("role", emp.Role),
	)

	return LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(tokenTTL.Seconds()),
		Profile: UserProfile{
			UserID:      account.ID.String(),
			EmployeeID:  emp.ID.String(),
			DisplayName: emp.FullName,
			Email:       account.Email,
			Role:        emp.Role,
			Department:  emp.Department,
		},
	}, nil
}
