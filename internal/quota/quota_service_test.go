package quota

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/naywayne90/arti-key-web/internal/domain"
	quotaerrors "github.com/naywayne90/arti-key-web/internal/quota/errors"
)

type fakeRepo struct {
	withTxFn          func(tx *sql.Tx) Repository
	ensureEntryFn     func(ctx context.Context, employeeID string, year int, leaveType string, baseTotal int) error
	findFn            func(ctx context.Context, employeeID string, year int, leaveType string) (*QuotaLedger, error)
	findAllForYearFn  func(ctx context.Context, employeeID string, year int) ([]QuotaLedger, error)
	debitFn           func(ctx context.Context, employeeID string, year int, leaveType string, days int, override bool) (int64, error)
	applyAdjustmentFn func(ctx context.Context, employeeID string, year int, leaveType string, delta int, override bool) (int64, error)
	createAdjLogFn    func(ctx context.Context, entry *QuotaAdjustmentLog) error
	listAdjustmentsFn func(ctx context.Context, employeeID string, year int) ([]QuotaAdjustmentLog, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) EnsureEntry(ctx context.Context, employeeID string, year int, leaveType string, baseTotal int) error {
	return f.ensureEntryFn(ctx, employeeID, year, leaveType, baseTotal)
}
func (f *fakeRepo) Find(ctx context.Context, employeeID string, year int, leaveType string) (*QuotaLedger, error) {
	return f.findFn(ctx, employeeID, year, leaveType)
}
func (f *fakeRepo) FindAllForYear(ctx context.Context, employeeID string, year int) ([]QuotaLedger, error) {
	return f.findAllForYearFn(ctx, employeeID, year)
}
func (f *fakeRepo) Debit(ctx context.Context, employeeID string, year int, leaveType string, days int, override bool) (int64, error) {
	return f.debitFn(ctx, employeeID, year, leaveType, days, override)
}
func (f *fakeRepo) ApplyAdjustment(ctx context.Context, employeeID string, year int, leaveType string, delta int, override bool) (int64, error) {
	return f.applyAdjustmentFn(ctx, employeeID, year, leaveType, delta, override)
}
func (f *fakeRepo) CreateAdjustmentLog(ctx context.Context, entry *QuotaAdjustmentLog) error {
	return f.createAdjLogFn(ctx, entry)
}
func (f *fakeRepo) ListAdjustments(ctx context.Context, employeeID string, year int) ([]QuotaAdjustmentLog, error) {
	return f.listAdjustmentsFn(ctx, employeeID, year)
}

func TestGetBalance_LazyInit(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	ensured := false

	repo := &fakeRepo{}
	repo.ensureEntryFn = func(ctx context.Context, eid string, year int, leaveType string, baseTotal int) error {
		ensured = true
		assert.Equal(t, 30, baseTotal)
		return nil
	}
	repo.findFn = func(ctx context.Context, eid string, year int, leaveType string) (*QuotaLedger, error) {
		return &QuotaLedger{EmployeeID: employeeID, Year: year, LeaveType: leaveType, TotalDays: 30}, nil
	}

	svc := NewService(db, repo)

	balance, err := svc.GetBalance(context.Background(), employeeID.String(), 2024, domain.LeaveTypeAnnual)
	assert.NoError(t, err)
	assert.True(t, ensured)
	assert.Equal(t, 30, balance.TotalDays)
	assert.Equal(t, 30, balance.RemainingDays)
}

func TestGetBalance_InvalidEmployeeID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.GetBalance(context.Background(), "not-a-uuid", 2024, domain.LeaveTypeAnnual)
	assert.ErrorIs(t, err, quotaerrors.ErrInvalidEmployeeID)
}

func TestAdjust_PositiveDelta(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	var logged *QuotaAdjustmentLog

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.ensureEntryFn = func(ctx context.Context, eid string, year int, leaveType string, baseTotal int) error {
		return nil
	}
	repo.applyAdjustmentFn = func(ctx context.Context, eid string, year int, leaveType string, delta int, override bool) (int64, error) {
		assert.Equal(t, 5, delta)
		return 1, nil
	}
	repo.createAdjLogFn = func(ctx context.Context, entry *QuotaAdjustmentLog) error {
		logged = entry
		return nil
	}
	repo.findFn = func(ctx context.Context, eid string, year int, leaveType string) (*QuotaLedger, error) {
		return &QuotaLedger{EmployeeID: employeeID, TotalDays: 35, UsedDays: 10}, nil
	}

	svc := NewService(db, repo)
	actor := domain.Actor{UserID: uuid.NewString(), DisplayName: "Mariam Koné", Role: domain.RoleDGPEC}

	mock.ExpectBegin()
	mock.ExpectCommit()
	balance, err := svc.Adjust(context.Background(), actor, AdjustQuotaRequest{
		EmployeeID: employeeID.String(),
		Year:       2024,
		LeaveType:  domain.LeaveTypeAnnual,
		Delta:      5,
		Reason:     "report de congés 2023",
	})
	assert.NoError(t, err)
	assert.Equal(t, 25, balance.RemainingDays)
	assert.NotNil(t, logged)
	assert.Equal(t, "report de congés 2023", logged.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjust_ReasonRequired(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})
	actor := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleDGPEC}

	_, err := svc.Adjust(context.Background(), actor, AdjustQuotaRequest{
		EmployeeID: uuid.NewString(),
		Year:       2024,
		LeaveType:  domain.LeaveTypeAnnual,
		Delta:      -5,
	})
	assert.ErrorIs(t, err, quotaerrors.ErrReasonRequired)
}

func TestAdjust_UnderflowRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.ensureEntryFn = func(ctx context.Context, eid string, year int, leaveType string, baseTotal int) error {
		return nil
	}
	repo.applyAdjustmentFn = func(ctx context.Context, eid string, year int, leaveType string, delta int, override bool) (int64, error) {
		return 0, nil
	}
	repo.createAdjLogFn = func(ctx context.Context, entry *QuotaAdjustmentLog) error {
		t.Fatal("no adjustment log may be written on underflow")
		return nil
	}
	repo.findFn = func(ctx context.Context, eid string, year int, leaveType string) (*QuotaLedger, error) {
		return &QuotaLedger{TotalDays: 30, UsedDays: 28}, nil
	}

	svc := NewService(db, repo)
	actor := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleDGPEC}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Adjust(context.Background(), actor, AdjustQuotaRequest{
		EmployeeID: uuid.NewString(),
		Year:       2024,
		LeaveType:  domain.LeaveTypeAnnual,
		Delta:      -10,
		Reason:     "correction",
	})
	assert.ErrorIs(t, err, quotaerrors.ErrAdjustmentUnderflow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBalances_EnsuresAllTypes(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ensured := map[string]int{}
	repo := &fakeRepo{}
	repo.ensureEntryFn = func(ctx context.Context, eid string, year int, leaveType string, baseTotal int) error {
		ensured[leaveType] = baseTotal
		return nil
	}
	repo.findAllForYearFn = func(ctx context.Context, eid string, year int) ([]QuotaLedger, error) {
		return []QuotaLedger{
			{LeaveType: domain.LeaveTypeAnnual, TotalDays: 30},
			{LeaveType: domain.LeaveTypeSick, TotalDays: 15},
		}, nil
	}

	svc := NewService(db, repo)

	balances, err := svc.ListBalances(context.Background(), uuid.NewString(), 2024)
	assert.NoError(t, err)
	assert.Len(t, balances, 2)
	assert.Len(t, ensured, len(baseAllotments))
	assert.Equal(t, 15, ensured[domain.LeaveTypeSick])
	assert.Equal(t, 0, ensured[domain.LeaveTypeOther])
}
