package domain

import "fmt"

// Verdict is the binary profitability classification for a delivery run.
type Verdict string

const (
	Worthwhile    Verdict = "worthwhile"
	NotWorthwhile Verdict = "not_worthwhile"
)

// ProfitabilityReport is the outcome of evaluating a Route against a
// VehicleCostModel and the tips collected for its stops. It is derived
// data and never persisted independently of the route that produced it.
type ProfitabilityReport struct {
	GasolineCost  float64
	WearCost      float64
	TimeCost      float64
	TotalEarnings float64
	TotalCost     float64
	Profit        float64
	Verdict       Verdict
}

// Summary renders the courier-facing verdict line.
func (r ProfitabilityReport) Summary() string {
	if r.Verdict == Worthwhile {
		return fmt.Sprintf("Worth it. Profit: $%.2f", r.Profit)
	}
	return fmt.Sprintf("Not worth it. Loss: $%.2f", -r.Profit)
}
