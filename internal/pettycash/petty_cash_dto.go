package pettycash

import "github.com/shopspring/decimal"

type CreateEntryRequest struct {
	RequestedBy         string          `json:"requested_by" binding:"required"`
	DeductedFromStaffID *string         `json:"deducted_from_staff_id"`
	SpendType           string          `json:"spend_type" binding:"required"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	SpentAt             string          `json:"spent_at" binding:"required"`
}

type UpdateEntryRequest struct {
	RequestedBy         string          `json:"requested_by" binding:"required"`
	DeductedFromStaffID *string         `json:"deducted_from_staff_id"`
	SpendType           string          `json:"spend_type" binding:"required"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	SpentAt             string          `json:"spent_at" binding:"required"`
}

type EntryResponse struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	SerialNumber        int64   `json:"serial_number"`
	RequestedBy         string  `json:"requested_by"`
	DeductedFromStaffID *string `json:"deducted_from_staff_id,omitempty"`
	SpendType           string  `json:"spend_type"`
	Description         string  `json:"description,omitempty"`
	Amount              string  `json:"amount"`
	SpentAt             string  `json:"spent_at"`
}
