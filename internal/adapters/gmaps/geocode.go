package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/platform/obs"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address via the Geocoding API and returns
// candidate coordinates, best match first. Zero matches yield an empty
// slice with a nil error; the caller classifies that as NoResult.
func (c *Client) Geocode(ctx context.Context, address string) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "gmaps.Geocode")(&err)

	const endpoint = "/maps/api/geocode/json"

	resp, err := c.doWithRetry(ctx, "geocode", func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint, map[string]string{"address": address})
	})
	if err != nil {
		return nil, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("geocode status %q", decoded.Status)
	}

	out := make([]domain.Coordinates, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		out = append(out, domain.Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		})
	}

	return out, nil
}
