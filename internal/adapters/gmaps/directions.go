package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func coordParam(c domain.Coordinates) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

// Route asks the Directions API for a driving route from origin to
// destination through every waypoint. With optimizeOrder set, the
// provider reorders the waypoints and reports the permutation.
func (c *Client) Route(
	ctx context.Context,
	origin, destination domain.Coordinates,
	waypoints []domain.Coordinates,
	optimizeOrder bool,
) (_ *ports.ProviderRoute, err error) {
	defer obs.Time(ctx, "gmaps.Route")(&err)

	const endpoint = "/maps/api/directions/json"

	parts := make([]string, 0, len(waypoints)+1)
	if optimizeOrder {
		parts = append(parts, "optimize:true")
	}
	for _, w := range waypoints {
		parts = append(parts, coordParam(w))
	}

	query := map[string]string{
		"origin":      coordParam(origin),
		"destination": coordParam(destination),
		"waypoints":   strings.Join(parts, "|"),
		"mode":        "driving",
	}

	resp, err := c.doWithRetry(ctx, "directions", func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return nil, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("directions status %q with %d routes", decoded.Status, len(decoded.Routes))
	}

	r := decoded.Routes[0]

	legs := make([]ports.RouteLeg, 0, len(r.Legs))
	for _, leg := range r.Legs {
		legs = append(legs, ports.RouteLeg{
			DistanceMeters:  leg.Distance.Value,
			DurationSeconds: leg.Duration.Value,
		})
	}

	order := r.WaypointOrder
	if !optimizeOrder && order == nil {
		// The API omits the permutation when ordering was not requested.
		order = make([]int, len(waypoints))
		for i := range order {
			order[i] = i
		}
	}

	return &ports.ProviderRoute{
		WaypointOrder: order,
		Legs:          legs,
	}, nil
}
