package dto

// PlanRequest is one batch of deliveries to plan and evaluate.
// RawText optionally carries typed or OCR-extracted text to mine for
// addresses in addition to DeliveryAddresses. TipAmounts is optional
// and parallel to the delivery addresses; missing entries default to 0.
type PlanRequest struct {
	CentralLocation   string    `json:"central_location"`
	DeliveryAddresses []string  `json:"delivery_addresses"`
	RawText           string    `json:"raw_text"`
	TipAmounts        []float64 `json:"tip_amounts"`
}

type StopResponse struct {
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Position int     `json:"position"`
	Tip      float64 `json:"tip"`
}

type FailedAddressResponse struct {
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

type PlanResponse struct {
	CentralLocation      string                  `json:"central_location"`
	OptimizedRoute       []string                `json:"optimized_route"`
	Stops                []StopResponse          `json:"stops"`
	FailedAddresses      []FailedAddressResponse `json:"failed_addresses"`
	TotalDistanceMiles   float64                 `json:"total_distance_miles"`
	TotalDurationMinutes float64                 `json:"total_duration_minutes"`
	Estimated            bool                    `json:"estimated"`
	Profit               float64                 `json:"profit"`
	Verdict              string                  `json:"verdict"`
	Summary              string                  `json:"summary"`
}

type ExtractRequest struct {
	Text string `json:"text"`
}

type ExtractResponse struct {
	Addresses []string `json:"addresses"`
}

// ErrorResponse is the structured failure body for fatal request errors.
type ErrorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}
