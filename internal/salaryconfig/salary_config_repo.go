package salaryconfig

import (
	"context"
	"database/sql"

	"fleetops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_config_repo.go -destination=mock/salary_config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, config *SalaryConfig) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryConfig, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryConfig, error)
	FindByVehicleAndCompany(ctx context.Context, companyID string, vehicleType string) (*SalaryConfig, error)
	ReplaceRules(ctx context.Context, configID string, rules []SalaryRule) error
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) Create(ctx context.Context, config *SalaryConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryConfig, error) {
	var configs []SalaryConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_orders ASC")
		}).
		Order("vehicle_type ASC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryConfig, error) {
	var config SalaryConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_orders ASC")
		}).
		First(&config, "id = ?", id).Error
	return &config, err
}

func (r *repository) FindByVehicleAndCompany(ctx context.Context, companyID string, vehicleType string) (*SalaryConfig, error) {
	var config SalaryConfig
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Rules").
		First(&config, "vehicle_type = ?", vehicleType).Error
	return &config, err
}

func (r *repository) ReplaceRules(ctx context.Context, configID string, rules []SalaryRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&SalaryRule{}, "config_id = ?", configID).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&SalaryRule{}, "config_id = ?", id).Error; err != nil {
			return err
		}
		return tx.
			Scopes(tenant.Scope(companyID)).
			Delete(&SalaryConfig{}, "id = ?", id).Error
	})
}
