package salaryreport

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// ReportExport tracks one requested workbook. The API inserts it pending
// alongside an outbox event; the consumer builds the file and flips the
// status.
type ReportExport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Year  int `gorm:"not null"`
	Month int `gorm:"not null"`

	Status    string `gorm:"type:varchar(20);not null;default:pending"`
	FilePath  string `gorm:"type:text"`
	LastError string `gorm:"type:text"`

	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
