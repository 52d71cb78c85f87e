package salaryconfig

import "github.com/shopspring/decimal"

type SalaryRuleInput struct {
	MinOrders   int              `json:"min_orders" binding:"gte=0"`
	MaxOrders   *int             `json:"max_orders" binding:"omitempty,gte=0"`
	Multiplier  *decimal.Decimal `json:"multiplier"`
	FixedAmount *decimal.Decimal `json:"fixed_amount"`
}

type CreateSalaryConfigRequest struct {
	VehicleType string            `json:"vehicle_type" binding:"required,oneof=Car Bike"`
	Rules       []SalaryRuleInput `json:"rules" binding:"required,min=1,dive"`
}

type UpdateSalaryConfigRequest struct {
	Rules []SalaryRuleInput `json:"rules" binding:"required,min=1,dive"`
}

type SalaryRuleResponse struct {
	ID          string  `json:"id"`
	MinOrders   int     `json:"min_orders"`
	MaxOrders   *int    `json:"max_orders,omitempty"`
	Multiplier  *string `json:"multiplier,omitempty"`
	FixedAmount *string `json:"fixed_amount,omitempty"`
}

type SalaryConfigResponse struct {
	ID          string               `json:"id"`
	CompanyID   string               `json:"company_id"`
	VehicleType string               `json:"vehicle_type"`
	Rules       []SalaryRuleResponse `json:"rules"`
}
