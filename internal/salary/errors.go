package salary

import "fmt"

// MissingConfigError reports that no rate config exists for a vehicle type.
// Distinguishable from "zero orders, zero pay" so the caller can tell the
// operator the configuration is absent rather than report a silently wrong
// payroll figure.
type MissingConfigError struct {
	VehicleType string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("no salary config for vehicle type %q", e.VehicleType)
}

// TierGapError reports an order count that falls outside every configured
// tier for a vehicle type. This is a configuration gap: the tiers are meant
// to partition the whole order-count domain.
type TierGapError struct {
	VehicleType string
	OrderCount  int
}

func (e *TierGapError) Error() string {
	return fmt.Sprintf("no rate tier covers %d orders for vehicle type %q", e.OrderCount, e.VehicleType)
}
