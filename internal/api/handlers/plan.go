package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Graceus777/Route-Optimizer/internal/api/dto"
	"github.com/Graceus777/Route-Optimizer/internal/workflow"
)

// PlanHandler runs the full delivery workflow for a batch request:
// address collection, geocoding, route optimization, tip association,
// and profitability evaluation.
type PlanHandler struct {
	Workflow *workflow.Workflow
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "body must contain only one JSON object")
		return
	}

	if len(req.DeliveryAddresses) == 0 && strings.TrimSpace(req.RawText) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "delivery_addresses or raw_text is required")
		return
	}

	// Malformed tips are rejected before any network call.
	for _, tip := range req.TipAmounts {
		if math.IsNaN(tip) || math.IsInf(tip, 0) || tip < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_input", "tip amounts must be non-negative numbers")
			return
		}
	}

	res := h.Workflow.Run(r.Context(), workflow.Request{
		Central:   req.CentralLocation,
		RawText:   req.RawText,
		Addresses: req.DeliveryAddresses,
		Tips:      workflow.NewStaticTips(req.DeliveryAddresses, req.TipAmounts),
	})

	if res.State == workflow.StateFailed {
		h.writeFailure(w, r, res)
		return
	}

	out := dto.PlanResponse{
		CentralLocation:      res.Route.Central.Address,
		OptimizedRoute:       make([]string, 0, len(res.Route.Stops)),
		Stops:                make([]dto.StopResponse, 0, len(res.Route.Stops)),
		FailedAddresses:      make([]dto.FailedAddressResponse, 0, len(res.Failures)),
		TotalDistanceMiles:   res.Route.TotalDistanceMiles,
		TotalDurationMinutes: res.Route.TotalDurationMinutes,
		Estimated:            res.Route.Estimated,
		Profit:               res.Report.Profit,
		Verdict:              string(res.Report.Verdict),
		Summary:              res.Report.Summary(),
	}
	for _, s := range res.Route.Stops {
		out.OptimizedRoute = append(out.OptimizedRoute, s.Address)
		out.Stops = append(out.Stops, dto.StopResponse{
			Address:  s.Address,
			Lat:      s.Coords.Lat,
			Lng:      s.Coords.Lng,
			Position: s.Position,
			Tip:      s.Tip,
		})
	}
	for _, f := range res.Failures {
		out.FailedAddresses = append(out.FailedAddresses, dto.FailedAddressResponse{
			Address: f.Address,
			Reason:  string(f.Kind),
		})
	}

	writeJSON(w, r, http.StatusOK, out)
}

func (h *PlanHandler) writeFailure(w http.ResponseWriter, r *http.Request, res *workflow.RunResult) {
	switch {
	case errors.Is(res.Err, workflow.ErrNoCandidates):
		writeError(w, r, http.StatusBadRequest, "extraction_empty", "no candidate addresses were found; enter them manually")
	case errors.Is(res.Err, workflow.ErrCentralUnresolved):
		writeError(w, r, http.StatusBadGateway, "central_unresolved", "the central location could not be geocoded")
	case errors.Is(res.Err, workflow.ErrNoUsableStops):
		writeError(w, r, http.StatusUnprocessableEntity, "no_usable_stops", "none of the delivery addresses could be geocoded")
	default:
		log.Error().Err(res.Err).Msg("plan request failed")
		writeError(w, r, http.StatusInternalServerError, "internal", "internal server error")
	}
}
