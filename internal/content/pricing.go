package content

import "math"

// BillingCycle selects how the public pricing section quotes a plan.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingAnnual  BillingCycle = "annual"
)

// PerMonth is the quoted per-month price for a cycle. Annual billing quotes
// the annual price spread over twelve months, rounded down.
func (p PricingPlan) PerMonth(cycle BillingCycle) int {
	if cycle == BillingAnnual {
		return int(p.AnnualPrice) / 12
	}
	return int(p.MonthlyPrice)
}

// Savings is the percentage saved by paying annually instead of twelve
// monthly payments, rounded to the nearest whole percent. Zero when annual
// billing is not cheaper.
func (p PricingPlan) Savings() int {
	monthlyTotal := 12 * int(p.MonthlyPrice)
	if monthlyTotal <= 0 || int(p.AnnualPrice) >= monthlyTotal {
		return 0
	}
	return int(math.Round(float64(monthlyTotal-int(p.AnnualPrice)) / float64(monthlyTotal) * 100))
}
