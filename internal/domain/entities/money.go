package entities

import "math"

// Monetary rules for the order lifecycle. All functions are pure and treat
// their inputs as well-formed; missing numeric values are zero.

// taxFactor converts an estimated subtotal into the tax-inclusive amount the
// customer authorizes (IVA 16%).
const taxFactor = 1.16

// overcostFactor is the tolerated margin over the authorized amount before a
// reauthorization is required (110%).
const overcostFactor = 1.10

// epsilon counters binary floating-point representation error before
// rounding, e.g. 1.005 * 100 = 100.49999....
const epsilon = 2.220446049250313e-16

// Round2 rounds to 2 decimal places with half-up semantics.
// Round2 is idempotent: applying it twice equals applying it once.
func Round2(x float64) float64 {
	return math.Round((x+epsilon)*100) / 100
}

// SubtotalEstimated sums estimated labor plus estimated component costs over
// every service of the order, rounded to 2 decimals.
func SubtotalEstimated(order RepairOrder) float64 {
	subtotal := 0.0
	for _, s := range order.Services {
		subtotal += s.LaborEstimated
		for _, c := range s.Components {
			subtotal += c.Estimated
		}
	}
	return Round2(subtotal)
}

// RealTotal sums real labor plus real component costs over every service of
// the order, rounded to 2 decimals.
func RealTotal(order RepairOrder) float64 {
	total := 0.0
	for _, s := range order.Services {
		total += s.LaborReal
		for _, c := range s.Components {
			total += c.Real
		}
	}
	return Round2(total)
}

// AuthorizedAmount is the tax-inclusive amount derived from an estimated
// subtotal.
func AuthorizedAmount(subtotalEstimated float64) float64 {
	return Round2(subtotalEstimated * taxFactor)
}

// Limit110 is the overcost ceiling: real costs above this value force the
// order into WAITING_FOR_APPROVAL.
func Limit110(authorizedAmount float64) float64 {
	return Round2(authorizedAmount * overcostFactor)
}
