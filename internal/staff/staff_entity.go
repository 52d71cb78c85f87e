package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeDriver   = "driver"
	TypeEmployee = "employee"
)

// Staff is one payable person: a delivery driver or an office employee.
// Both share the same salary shape; drivers additionally carry a vehicle
// type that selects their order rate table.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	StaffType  string `gorm:"type:varchar(20);not null;index"`
	FirstName  string `gorm:"type:varchar(80);not null"`
	LastName   string `gorm:"type:varchar(80);not null"`
	Vehicle    string `gorm:"type:varchar(30)"`
	Department string `gorm:"type:varchar(80)"`

	// Base salary paid by bank transfer, in company currency (3 decimals).
	MainSalary decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// StaffFigure holds one person's period-scoped payroll inputs: the two
// order buckets and the non-petty-cash deduction sources. One row per staff
// per month; the accountant's override edits land here.
type StaffFigure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index:idx_staff_period,unique"`

	Year  int `gorm:"not null;index:idx_staff_period,unique"`
	Month int `gorm:"not null;index:idx_staff_period,unique"`

	MainOrder       int `gorm:"not null;default:0"`
	AdditionalOrder int `gorm:"not null;default:0"`

	TalabatDeduction decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CompanyDeduction decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`

	Remarks string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
