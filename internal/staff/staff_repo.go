package staff

import (
	"context"
	"database/sql"

	"fleetops/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, member *Staff) error
	FindAllByCompany(ctx context.Context, companyID string, staffType string) ([]Staff, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Staff, error)
	Update(ctx context.Context, member *Staff) error
	Delete(ctx context.Context, companyID string, id string) error

	UpsertFigure(ctx context.Context, figure *StaffFigure) error
	FindFigure(ctx context.Context, companyID, staffID string, year, month int) (*StaffFigure, error)
	FindFiguresForPeriod(ctx context.Context, companyID string, year, month int) ([]StaffFigure, error)
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

func (r *repository) Create(ctx context.Context, member *Staff) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, staffType string) ([]Staff, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("first_name ASC, last_name ASC")

	if staffType != "" {
		db = db.Where("staff_type = ?", staffType)
	}

	var members []Staff
	err := db.Find(&members).Error
	return members, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Staff, error) {
	var member Staff
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&member, "id = ?", id).Error
	return &member, err
}

func (r *repository) Update(ctx context.Context, member *Staff) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Staff{}, "id = ?", id).Error
}

func (r *repository) UpsertFigure(ctx context.Context, figure *StaffFigure) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "staff_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"main_order", "additional_order",
				"talabat_deduction", "company_deduction",
				"remarks", "updated_at",
			}),
		}).
		Create(figure).Error
}

func (r *repository) FindFigure(ctx context.Context, companyID, staffID string, year, month int) (*StaffFigure, error) {
	var figure StaffFigure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("staff_id = ? AND year = ? AND month = ?", staffID, year, month).
		First(&figure).Error
	return &figure, err
}

func (r *repository) FindFiguresForPeriod(ctx context.Context, companyID string, year, month int) ([]StaffFigure, error) {
	var figures []StaffFigure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ? AND month = ?", year, month).
		Find(&figures).Error
	return figures, err
}
