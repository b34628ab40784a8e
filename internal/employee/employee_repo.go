package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]Employee, error)
	FindByRole(ctx context.Context, role string) ([]Employee, error)
	FindManagerOfDepartment(ctx context.Context, department string) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByDepartment(ctx context.Context, department string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByRole(ctx context.Context, role string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Where("active = TRUE").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindManagerOfDepartment(ctx context.Context, department string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Where("role = ?", "manager").
		Where("active = TRUE").
		First(&e).Error
	return &e, err
}
