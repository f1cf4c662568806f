package domain

// CompensationMode selects how base compensation is paid out.
// Both rules appear in real courier arrangements, so the choice is an
// explicit configuration value rather than an implicit constant.
type CompensationMode string

const (
	// CompensationPerStop pays the base rate once per delivered stop.
	CompensationPerStop CompensationMode = "per_stop"
	// CompensationPerBatch pays the base rate once per delivery run.
	CompensationPerBatch CompensationMode = "per_batch"
)

// VehicleCostModel holds the operating-cost parameters for one vehicle.
// All values are supplied through configuration so different vehicles can
// be evaluated against the same route.
type VehicleCostModel struct {
	FuelEfficiencyMPG       float64
	FuelPricePerGallon      float64
	WearAndTearPerMile      float64
	TimeCostPerHour         float64
	CompensationPerDelivery float64
	CompensationMode        CompensationMode
}
