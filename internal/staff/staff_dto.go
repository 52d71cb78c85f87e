package staff

import "github.com/shopspring/decimal"

type CreateStaffRequest struct {
	StaffType  string          `json:"staff_type" binding:"required,oneof=driver employee"`
	FirstName  string          `json:"first_name" binding:"required"`
	LastName   string          `json:"last_name" binding:"required"`
	Vehicle    string          `json:"vehicle" binding:"omitempty,oneof=Car Bike"`
	Department string          `json:"department"`
	MainSalary decimal.Decimal `json:"main_salary"`
}

type UpdateStaffRequest struct {
	FirstName  string          `json:"first_name" binding:"required"`
	LastName   string          `json:"last_name" binding:"required"`
	Vehicle    string          `json:"vehicle" binding:"omitempty,oneof=Car Bike"`
	Department string          `json:"department"`
	MainSalary decimal.Decimal `json:"main_salary"`
}

// UpsertFigureRequest carries the accountant's period override: order counts
// and deduction amounts for one staff member in one month.
type UpsertFigureRequest struct {
	MainOrder        int             `json:"main_order" binding:"gte=0"`
	AdditionalOrder  int             `json:"additional_order" binding:"gte=0"`
	TalabatDeduction decimal.Decimal `json:"talabat_deduction"`
	CompanyDeduction decimal.Decimal `json:"company_deduction"`
	Remarks          string          `json:"remarks"`
}

type StaffResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	StaffType  string `json:"staff_type"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Vehicle    string `json:"vehicle,omitempty"`
	Department string `json:"department,omitempty"`
	MainSalary string `json:"main_salary"`
}

type StaffFigureResponse struct {
	ID               string `json:"id"`
	StaffID          string `json:"staff_id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	MainOrder        int    `json:"main_order"`
	AdditionalOrder  int    `json:"additional_order"`
	TalabatDeduction string `json:"talabat_deduction"`
	CompanyDeduction string `json:"company_deduction"`
	Remarks          string `json:"remarks,omitempty"`
}
