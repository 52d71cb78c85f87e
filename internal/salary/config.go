package salary

import "github.com/shopspring/decimal"

const (
	VehicleCar  = "Car"
	VehicleBike = "Bike"
)

// UnboundedOrders marks a tier with no upper limit. Only the top tier of a
// well-formed config uses it.
const UnboundedOrders = -1

// RateTier is one bracket of order counts with its pay rule. Bounds are
// inclusive. Exactly one of Multiplier or FixedAmount is set: a multiplier
// tier pays per order, a fixed tier pays a flat amount once the bracket is
// reached.
type RateTier struct {
	MinOrders   int
	MaxOrders   int // UnboundedOrders = no upper limit
	Multiplier  *decimal.Decimal
	FixedAmount *decimal.Decimal
}

// Contains reports whether the tier covers the given order count.
func (t RateTier) Contains(orders int) bool {
	if orders < t.MinOrders {
		return false
	}
	return t.MaxOrders == UnboundedOrders || orders <= t.MaxOrders
}

// Config holds the ordered rate tiers for one vehicle type. Tiers are
// expected to partition [0, inf) without gaps; the resolver surfaces a
// TierGapError when they do not.
type Config struct {
	VehicleType string
	Tiers       []RateTier
}

// ConfigSet maps vehicle type to its rate config. It is loaded once per
// reporting pass and read-only during calculation.
type ConfigSet map[string]Config

// NewConfigSet indexes configs by vehicle type. A later config for the same
// vehicle type replaces the earlier one.
func NewConfigSet(configs ...Config) ConfigSet {
	set := make(ConfigSet, len(configs))
	for _, cfg := range configs {
		set[cfg.VehicleType] = cfg
	}
	return set
}
