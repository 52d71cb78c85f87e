package pettycash

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PettyCashEntry is one cash disbursement from the office drawer. When
// DeductedFromStaffID is set the amount is recovered from that person's
// next salary; otherwise the company absorbs it.
type PettyCashEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_company_serial"`

	// Sequential per company, assigned from the counter table.
	SerialNumber int64 `gorm:"not null;uniqueIndex:idx_company_serial"`

	RequestedBy         string     `gorm:"type:varchar(160);not null"`
	DeductedFromStaffID *uuid.UUID `gorm:"type:uuid;index"`

	SpendType   string          `gorm:"type:varchar(80);not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	SpentAt     time.Time       `gorm:"not null;index"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
