package salaryreport

import (
	"context"
	"database/sql"

	"fleetops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_export_repo.go -destination=mock/report_export_repo_mock.go -package=mock
type ExportRepository interface {
	WithTx(tx *sql.Tx) ExportRepository
	Create(ctx context.Context, export *ReportExport) error
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*ReportExport, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]ReportExport, error)
	MarkCompleted(ctx context.Context, id string, filePath string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type exportRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewExportRepository(db *gorm.DB) ExportRepository {
	return &exportRepository{db: db}
}

func (r *exportRepository) WithTx(tx *sql.Tx) ExportRepository {
	return &exportRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *exportRepository) Create(ctx context.Context, export *ReportExport) error {
	return r.db.WithContext(ctx).Create(export).Error
}

func (r *exportRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*ReportExport, error) {
	var export ReportExport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&export, "id = ?", id).Error
	return &export, err
}

func (r *exportRepository) FindAllByCompany(ctx context.Context, companyID string) ([]ReportExport, error) {
	var exports []ReportExport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&exports).Error
	return exports, err
}

func (r *exportRepository) MarkCompleted(ctx context.Context, id string, filePath string) error {
	return r.db.WithContext(ctx).
		Model(&ReportExport{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":    ExportStatusCompleted,
			"file_path": filePath,
		}).Error
}

func (r *exportRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.db.WithContext(ctx).
		Model(&ReportExport{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     ExportStatusFailed,
			"last_error": reason,
		}).Error
}
