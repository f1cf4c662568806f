package profit

import (
	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

// Evaluate computes the profitability of running a route given the tips
// collected per stop and the vehicle's cost model.
//
// Pure function: no I/O, no mutation, deterministic for identical inputs.
// Tips are expected to be parallel to the route's optimized stop order;
// missing entries count as zero, extra entries are ignored.
func Evaluate(route *domain.Route, tips []float64, model domain.VehicleCostModel) domain.ProfitabilityReport {
	gasolineCost := 0.0
	if model.FuelEfficiencyMPG > 0 {
		gasolineCost = route.TotalDistanceMiles / model.FuelEfficiencyMPG * model.FuelPricePerGallon
	}

	wearCost := route.TotalDistanceMiles * model.WearAndTearPerMile
	timeCost := route.TotalDurationMinutes / 60.0 * model.TimeCostPerHour

	tipTotal := 0.0
	for i, tip := range tips {
		if i >= len(route.Stops) {
			break
		}
		tipTotal += tip
	}

	compensation := model.CompensationPerDelivery
	if model.CompensationMode == domain.CompensationPerStop {
		compensation = model.CompensationPerDelivery * float64(len(route.Stops))
	}

	totalEarnings := compensation + tipTotal
	totalCost := gasolineCost + wearCost + timeCost
	p := totalEarnings - totalCost

	verdict := domain.NotWorthwhile
	if p > 0 {
		verdict = domain.Worthwhile
	}

	return domain.ProfitabilityReport{
		GasolineCost:  gasolineCost,
		WearCost:      wearCost,
		TimeCost:      timeCost,
		TotalEarnings: totalEarnings,
		TotalCost:     totalCost,
		Profit:        p,
		Verdict:       verdict,
	}
}
