package tenant

import "gorm.io/gorm"

// Scope restricts any query to rows owned by the given company.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
