package pettycash_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"fleetops/internal/pettycash"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePettyCashRepository struct {
	createFn                func(ctx context.Context, entry *pettycash.PettyCashEntry) error
	findAllByCompanyFn      func(ctx context.Context, companyID string, from, to *time.Time) ([]pettycash.PettyCashEntry, error)
	findByIDAndCompanyFn    func(ctx context.Context, companyID, id string) (*pettycash.PettyCashEntry, error)
	updateFn                func(ctx context.Context, entry *pettycash.PettyCashEntry) error
	deleteFn                func(ctx context.Context, companyID, id string) error
	staffBelongsToCompanyFn func(ctx context.Context, companyID, staffID string) (bool, error)
	sumByStaffBetweenFn     func(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

func (f *fakePettyCashRepository) WithTx(tx *sql.Tx) pettycash.Repository { return f }

func (f *fakePettyCashRepository) Create(ctx context.Context, entry *pettycash.PettyCashEntry) error {
	return f.createFn(ctx, entry)
}

func (f *fakePettyCashRepository) FindAllByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]pettycash.PettyCashEntry, error) {
	return f.findAllByCompanyFn(ctx, companyID, from, to)
}

func (f *fakePettyCashRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*pettycash.PettyCashEntry, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}

func (f *fakePettyCashRepository) Update(ctx context.Context, entry *pettycash.PettyCashEntry) error {
	return f.updateFn(ctx, entry)
}

func (f *fakePettyCashRepository) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func (f *fakePettyCashRepository) StaffBelongsToCompany(ctx context.Context, companyID, staffID string) (bool, error) {
	return f.staffBelongsToCompanyFn(ctx, companyID, staffID)
}

func (f *fakePettyCashRepository) SumByStaffBetween(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	return f.sumByStaffBetweenFn(ctx, companyID, from, to)
}

type fakeCounterRepository struct {
	next int64
	err  error
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

func TestPettyCashService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success - assigns next serial", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		repo := &fakePettyCashRepository{
			createFn: func(ctx context.Context, entry *pettycash.PettyCashEntry) error {
				assert.Equal(t, int64(1), entry.SerialNumber)
				assert.Equal(t, companyID, entry.CompanyID.String())
				assert.Nil(t, entry.DeductedFromStaffID)
				return nil
			},
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := pettycash.NewService(db, repo, &fakeCounterRepository{})

		resp, err := svc.Create(ctx, companyID, actorID, pettycash.CreateEntryRequest{
			RequestedBy: "Office Manager",
			SpendType:   "fuel",
			Amount:      decimal.RequireFromString("7.500"),
			SpentAt:     "2026-07-14",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), resp.SerialNumber)
		assert.Equal(t, "7.500", resp.Amount)
		assert.Equal(t, "2026-07-14", resp.SpentAt)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("success - recoverable from staff member", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		staffID := uuid.New()
		repo := &fakePettyCashRepository{
			staffBelongsToCompanyFn: func(ctx context.Context, gotCompany, gotStaff string) (bool, error) {
				assert.Equal(t, staffID.String(), gotStaff)
				return true, nil
			},
			createFn: func(ctx context.Context, entry *pettycash.PettyCashEntry) error {
				assert.NotNil(t, entry.DeductedFromStaffID)
				assert.Equal(t, staffID, *entry.DeductedFromStaffID)
				return nil
			},
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := pettycash.NewService(db, repo, &fakeCounterRepository{})

		sid := staffID.String()
		resp, err := svc.Create(ctx, companyID, actorID, pettycash.CreateEntryRequest{
			RequestedBy:         "Ahmed Saleh",
			DeductedFromStaffID: &sid,
			SpendType:           "advance",
			Amount:              decimal.RequireFromString("20.000"),
			SpentAt:             "2026-07-01",
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.DeductedFromStaffID)
	})

	t.Run("staff outside company rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		repo := &fakePettyCashRepository{
			staffBelongsToCompanyFn: func(ctx context.Context, companyID, staffID string) (bool, error) {
				return false, nil
			},
		}

		svc := pettycash.NewService(db, repo, &fakeCounterRepository{})

		sid := uuid.New().String()
		_, err := svc.Create(ctx, companyID, actorID, pettycash.CreateEntryRequest{
			RequestedBy:         "Ahmed Saleh",
			DeductedFromStaffID: &sid,
			SpendType:           "advance",
			Amount:              decimal.RequireFromString("20.000"),
			SpentAt:             "2026-07-01",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := pettycash.NewService(db, &fakePettyCashRepository{}, &fakeCounterRepository{})

		_, err := svc.Create(ctx, companyID, actorID, pettycash.CreateEntryRequest{
			RequestedBy: "Office Manager",
			SpendType:   "fuel",
			Amount:      decimal.Zero,
			SpentAt:     "2026-07-14",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("serial allocation failure -> rollback", func(t *testing.T) {
		db, sqlMock, _ := sqlmock.New()
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		svc := pettycash.NewService(db, &fakePettyCashRepository{}, &fakeCounterRepository{err: errors.New("counter down")})

		_, err := svc.Create(ctx, companyID, actorID, pettycash.CreateEntryRequest{
			RequestedBy: "Office Manager",
			SpendType:   "fuel",
			Amount:      decimal.RequireFromString("7.500"),
			SpentAt:     "2026-07-14",
		})

		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestPettyCashService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("passes date range through", func(t *testing.T) {
		from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		repo := &fakePettyCashRepository{
			findAllByCompanyFn: func(ctx context.Context, gotCompany string, gotFrom, gotTo *time.Time) ([]pettycash.PettyCashEntry, error) {
				assert.Equal(t, from, *gotFrom)
				assert.Equal(t, to, *gotTo)
				return []pettycash.PettyCashEntry{
					{ID: uuid.New(), SerialNumber: 7, Amount: decimal.RequireFromString("3.250"), SpentAt: from},
				}, nil
			},
		}

		svc := pettycash.NewService(nil, repo, &fakeCounterRepository{})

		resp, err := svc.GetAll(ctx, companyID, &from, &to)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(7), resp[0].SerialNumber)
		assert.Equal(t, "3.250", resp[0].Amount)
	})
}

func TestPettyCashService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	entryID := uuid.New()

	t.Run("success keeps serial", func(t *testing.T) {
		repo := &fakePettyCashRepository{
			findByIDAndCompanyFn: func(ctx context.Context, gotCompany, gotID string) (*pettycash.PettyCashEntry, error) {
				return &pettycash.PettyCashEntry{
					ID:           entryID,
					SerialNumber: 12,
					Amount:       decimal.RequireFromString("5.000"),
				}, nil
			},
			updateFn: func(ctx context.Context, entry *pettycash.PettyCashEntry) error {
				assert.Equal(t, int64(12), entry.SerialNumber)
				assert.Equal(t, "9.750", entry.Amount.StringFixed(3))
				return nil
			},
		}

		svc := pettycash.NewService(nil, repo, &fakeCounterRepository{})

		resp, err := svc.Update(ctx, companyID, entryID.String(), pettycash.UpdateEntryRequest{
			RequestedBy: "Office Manager",
			SpendType:   "maintenance",
			Amount:      decimal.RequireFromString("9.750"),
			SpentAt:     "2026-07-20",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), resp.SerialNumber)
	})

	t.Run("entry not found", func(t *testing.T) {
		repo := &fakePettyCashRepository{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*pettycash.PettyCashEntry, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := pettycash.NewService(nil, repo, &fakeCounterRepository{})

		_, err := svc.Update(ctx, companyID, entryID.String(), pettycash.UpdateEntryRequest{
			RequestedBy: "x",
			SpendType:   "x",
			Amount:      decimal.RequireFromString("1.000"),
			SpentAt:     "2026-07-20",
		})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestPettyCashService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	entryID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		repo := &fakePettyCashRepository{
			deleteFn: func(ctx context.Context, gotCompany, gotID string) error {
				assert.Equal(t, entryID, gotID)
				return nil
			},
		}

		svc := pettycash.NewService(nil, repo, &fakeCounterRepository{})

		assert.NoError(t, svc.Delete(ctx, companyID, entryID))
	})
}
