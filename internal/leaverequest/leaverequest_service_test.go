package leaverequest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/naywayne90/arti-key-web/internal/domain"
	leaverequesterrors "github.com/naywayne90/arti-key-web/internal/leaverequest/errors"
)

type fakeRepo struct {
	withTxFn                    func(tx *sql.Tx) Repository
	createFn                    func(ctx context.Context, l *LeaveRequest) error
	findByIDFn                  func(ctx context.Context, id string) (*LeaveRequest, error)
	findByRequesterFn           func(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	findByDepartmentAndStatusFn func(ctx context.Context, department string, statuses []string) ([]LeaveRequest, error)
	findByStatusFn              func(ctx context.Context, statuses []string) ([]LeaveRequest, error)
	countGroupedByFn            func(ctx context.Context, column string) (map[string]int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, l *LeaveRequest) error {
	return f.createFn(ctx, l)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	return f.findByRequesterFn(ctx, requesterID)
}
func (f *fakeRepo) FindByDepartmentAndStatus(ctx context.Context, department string, statuses []string) ([]LeaveRequest, error) {
	return f.findByDepartmentAndStatusFn(ctx, department, statuses)
}
func (f *fakeRepo) FindByStatus(ctx context.Context, statuses []string) ([]LeaveRequest, error) {
	return f.findByStatusFn(ctx, statuses)
}
func (f *fakeRepo) UpdateStatus(ctx context.Context, id, newStatus string, expectedVersion int) (int64, error) {
	return 0, nil
}
func (f *fakeRepo) CountGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	return f.countGroupedByFn(ctx, column)
}

type fakeCalendar struct {
	countFn func(ctx context.Context, start, end time.Time) (int, error)
}

func (f *fakeCalendar) CountWorkingDays(ctx context.Context, start, end time.Time) (int, error) {
	return f.countFn(ctx, start, end)
}

type fakeRecorder struct {
	recordFn func(ctx context.Context, tx *sql.Tx, req *LeaveRequest, actor domain.Actor) error
}

func (f *fakeRecorder) RecordSubmission(ctx context.Context, tx *sql.Tx, req *LeaveRequest, actor domain.Actor) error {
	return f.recordFn(ctx, tx, req, actor)
}

func employeeActor() domain.Actor {
	return domain.Actor{
		UserID:      uuid.NewString(),
		EmployeeID:  uuid.NewString(),
		DisplayName: "Kouamé Yao",
		Role:        domain.RoleEmployee,
		Department:  "Finance",
	}
}

func weekdaysOnly(ctx context.Context, start, end time.Time) (int, error) {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days++
		}
	}
	return days, nil
}

func TestCreate_FullWeekIsFiveWorkingDays(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	actor := employeeActor()
	var created *LeaveRequest

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, l *LeaveRequest) error {
		created = l
		return nil
	}

	recorded := false
	recorder := &fakeRecorder{recordFn: func(ctx context.Context, tx *sql.Tx, req *LeaveRequest, a domain.Actor) error {
		recorded = true
		assert.NotNil(t, tx)
		assert.Equal(t, actor.EmployeeID, a.EmployeeID)
		return nil
	}}

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, recorder)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), actor, CreateRequest{
		LeaveType: domain.LeaveTypeAnnual,
		StartDate: "2024-01-15",
		EndDate:   "2024-01-19",
		Reason:    "congés annuels",
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.WorkingDays)
	assert.Equal(t, domain.StatusSubmitted, resp.Status)
	assert.True(t, recorded)
	assert.NotNil(t, created)
	assert.Equal(t, actor.Department, created.Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidDateRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	_, err := svc.Create(context.Background(), employeeActor(), CreateRequest{
		LeaveType: domain.LeaveTypeAnnual,
		StartDate: "2024-01-19",
		EndDate:   "2024-01-15",
	})
	assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
}

func TestCreate_SickLeaveNeedsAttachment(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	_, err := svc.Create(context.Background(), employeeActor(), CreateRequest{
		LeaveType: domain.LeaveTypeSick,
		StartDate: "2024-02-05",
		EndDate:   "2024-02-06",
	})
	assert.ErrorIs(t, err, leaverequesterrors.ErrAttachmentRequired)

	var createdWith int
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, l *LeaveRequest) error {
		createdWith = len(l.Attachments)
		return nil
	}

	db2, mock2, _ := sqlmock.New()
	defer db2.Close()
	svc2 := NewService(db2, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{
		recordFn: func(ctx context.Context, tx *sql.Tx, req *LeaveRequest, a domain.Actor) error { return nil },
	})

	mock2.ExpectBegin()
	mock2.ExpectCommit()
	_, err = svc2.Create(context.Background(), employeeActor(), CreateRequest{
		LeaveType: domain.LeaveTypeSick,
		StartDate: "2024-02-05",
		EndDate:   "2024-02-06",
		Attachments: []AttachmentInput{
			{FileName: "certificat.pdf", FileURL: "https://files.example.com/certificat.pdf", MimeType: "application/pdf"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, createdWith)
}

func TestCreate_WeekendOnlySpanRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	// 2024-01-20/21 is a Saturday and Sunday.
	_, err := svc.Create(context.Background(), employeeActor(), CreateRequest{
		LeaveType: domain.LeaveTypeAnnual,
		StartDate: "2024-01-20",
		EndDate:   "2024-01-21",
	})
	assert.ErrorIs(t, err, leaverequesterrors.ErrNoWorkingDays)
}

func TestCreate_AuditFailureRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, l *LeaveRequest) error { return nil }

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{
		recordFn: func(ctx context.Context, tx *sql.Tx, req *LeaveRequest, a domain.Actor) error {
			return sql.ErrConnDone
		},
	})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), employeeActor(), CreateRequest{
		LeaveType: domain.LeaveTypeAnnual,
		StartDate: "2024-01-15",
		EndDate:   "2024-01-19",
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForActor_RoleScoping(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByRequesterFn = func(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
		return []LeaveRequest{{ID: uuid.New(), Status: domain.StatusSubmitted}}, nil
	}
	repo.findByDepartmentAndStatusFn = func(ctx context.Context, department string, statuses []string) ([]LeaveRequest, error) {
		assert.Equal(t, "Finance", department)
		assert.Equal(t, []string{domain.StatusSubmitted}, statuses)
		return nil, nil
	}
	repo.findByStatusFn = func(ctx context.Context, statuses []string) ([]LeaveRequest, error) {
		return []LeaveRequest{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	own, err := svc.ListForActor(context.Background(), domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleEmployee})
	assert.NoError(t, err)
	assert.Len(t, own, 1)

	// An empty department queue is an empty list, never an error.
	queue, err := svc.ListForActor(context.Background(), domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleManager, Department: "Finance"})
	assert.NoError(t, err)
	assert.Empty(t, queue)

	pending, err := svc.ListForActor(context.Background(), domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleDGPEC})
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestGetByID_Visibility(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := employeeActor()
	ownerID, _ := uuid.Parse(owner.EmployeeID)
	l := &LeaveRequest{
		ID:          uuid.New(),
		RequesterID: ownerID,
		Department:  "Finance",
		Status:      domain.StatusSubmitted,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return l, nil }

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	_, err := svc.GetByID(context.Background(), owner, l.ID.String())
	assert.NoError(t, err)

	stranger := domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleEmployee}
	_, err = svc.GetByID(context.Background(), stranger, l.ID.String())
	assert.ErrorIs(t, err, leaverequesterrors.ErrNotVisibleToActor)

	otherManager := domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleManager, Department: "IT"}
	_, err = svc.GetByID(context.Background(), otherManager, l.ID.String())
	assert.ErrorIs(t, err, leaverequesterrors.ErrNotVisibleToActor)

	dgpec := domain.Actor{EmployeeID: uuid.NewString(), Role: domain.RoleDGPEC}
	_, err = svc.GetByID(context.Background(), dgpec, l.ID.String())
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	_, err := svc.GetByID(context.Background(), employeeActor(), uuid.NewString())
	assert.ErrorIs(t, err, leaverequesterrors.ErrLeaveRequestNotFound)
}

func TestStatistics_Totals(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.countGroupedByFn = func(ctx context.Context, column string) (map[string]int64, error) {
		switch column {
		case "status":
			return map[string]int64{domain.StatusApproved: 4, domain.StatusRejected: 1}, nil
		case "leave_type":
			return map[string]int64{domain.LeaveTypeAnnual: 5}, nil
		default:
			return map[string]int64{"Finance": 3, "IT": 2}, nil
		}
	}

	svc := NewService(db, repo, &fakeCalendar{countFn: weekdaysOnly}, &fakeRecorder{})

	stats, err := svc.Statistics(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(4), stats.ByStatus[domain.StatusApproved])
	assert.Equal(t, int64(3), stats.ByDepartment["Finance"])
}
