package pettycash

import (
	"context"
	"database/sql"
	"time"

	"fleetops/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=petty_cash_repo.go -destination=mock/petty_cash_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *PettyCashEntry) error
	FindAllByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]PettyCashEntry, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PettyCashEntry, error)
	Update(ctx context.Context, entry *PettyCashEntry) error
	Delete(ctx context.Context, companyID string, id string) error
	StaffBelongsToCompany(ctx context.Context, companyID string, staffID string) (bool, error)
	SumByStaffBetween(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, entry *PettyCashEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]PettyCashEntry, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("serial_number DESC")

	if from != nil {
		db = db.Where("spent_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("spent_at < ?", *to)
	}

	var entries []PettyCashEntry
	err := db.Find(&entries).Error
	return entries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PettyCashEntry, error) {
	var entry PettyCashEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) Update(ctx context.Context, entry *PettyCashEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PettyCashEntry{}, "id = ?", id).Error
}

func (r *repository) StaffBelongsToCompany(ctx context.Context, companyID string, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("staffs").
		Where("id = ?", staffID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

type staffSum struct {
	StaffID string
	Total   decimal.Decimal
}

// SumByStaffBetween totals the recoverable disbursements per staff member
// over [from, to). Entries with no deduction target are excluded.
func (r *repository) SumByStaffBetween(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	var sums []staffSum
	err := r.db.WithContext(ctx).
		Model(&PettyCashEntry{}).
		Select("deducted_from_staff_id::text AS staff_id, SUM(amount) AS total").
		Scopes(tenant.Scope(companyID)).
		Where("deducted_from_staff_id IS NOT NULL").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Group("deducted_from_staff_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(sums))
	for _, s := range sums {
		totals[s.StaffID] = s.Total
	}
	return totals, nil
}
