package salaryconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryConfig struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_company_vehicle,unique"`
	VehicleType string    `gorm:"type:varchar(30);not null;index:idx_company_vehicle,unique"`

	Rules []SalaryRule `gorm:"foreignKey:ConfigID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalaryRule is one rate tier row. MaxOrders NULL means the tier has no
// upper bound; exactly one of Multiplier / FixedAmount is set.
type SalaryRule struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConfigID uuid.UUID `gorm:"type:uuid;not null;index"`

	MinOrders   int              `gorm:"not null"`
	MaxOrders   *int             `gorm:"type:int"`
	Multiplier  *decimal.Decimal `gorm:"type:decimal(12,3)"`
	FixedAmount *decimal.Decimal `gorm:"type:decimal(12,3)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
