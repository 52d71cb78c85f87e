package salary

import "github.com/shopspring/decimal"

// SalaryForOrders resolves the order-derived pay for an order count under
// the vehicle type's rate config. Pure function of its inputs; orders must
// be non-negative (the DTO layer rejects negatives before they get here).
//
// Returns MissingConfigError when the vehicle type has no config at all and
// TierGapError when no tier covers the count, so a rate-table gap fails the
// report loudly instead of paying zero for the bracket.
func (s ConfigSet) SalaryForOrders(orders int, vehicleType string) (decimal.Decimal, error) {
	cfg, ok := s[vehicleType]
	if !ok {
		return decimal.Zero, &MissingConfigError{VehicleType: vehicleType}
	}

	// Tiers are non-overlapping by construction, so scan order is irrelevant.
	for _, tier := range cfg.Tiers {
		if !tier.Contains(orders) {
			continue
		}
		if tier.Multiplier != nil {
			return tier.Multiplier.Mul(decimal.NewFromInt(int64(orders))), nil
		}
		if tier.FixedAmount != nil {
			return *tier.FixedAmount, nil
		}
		// A tier with neither rule set is as wrong as a gap.
		break
	}

	return decimal.Zero, &TierGapError{VehicleType: vehicleType, OrderCount: orders}
}
