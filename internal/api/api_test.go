package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Graceus777/Route-Optimizer/internal/adapters/cache"
	"github.com/Graceus777/Route-Optimizer/internal/adapters/gmaps"
	"github.com/Graceus777/Route-Optimizer/internal/api"
	"github.com/Graceus777/Route-Optimizer/internal/api/dto"
	"github.com/Graceus777/Route-Optimizer/internal/domain"
	"github.com/Graceus777/Route-Optimizer/internal/extract"
	"github.com/Graceus777/Route-Optimizer/internal/geocode"
	"github.com/Graceus777/Route-Optimizer/internal/platform/metrics"
	"github.com/Graceus777/Route-Optimizer/internal/ports"
	"github.com/Graceus777/Route-Optimizer/internal/route"
	"github.com/Graceus777/Route-Optimizer/internal/workflow"
)

const centralAddr = "1 Depot Rd, Madison"

func testRouter(t *testing.T, geocoder ports.GeocodingProvider, routing ports.RoutingProvider) http.Handler {
	t.Helper()

	extractor, err := extract.NewExtractor([]string{"Madison", "Verona", "Fitchburg"})
	if err != nil {
		t.Fatalf("create extractor: %v", err)
	}

	model := domain.VehicleCostModel{
		FuelEfficiencyMPG:       32,
		FuelPricePerGallon:      2.85,
		WearAndTearPerMile:      0.05,
		TimeCostPerHour:         4,
		CompensationPerDelivery: 2,
		CompensationMode:        domain.CompensationPerStop,
	}

	wf := workflow.New(
		extractor,
		geocode.NewResolver(geocoder, cache.NewMemoryGeocodeCache()),
		route.NewOptimizer(routing),
		model,
		centralAddr,
	)

	return api.NewRouter(wf, extractor)
}

func defaultMocks() (*gmaps.MockGeocoder, *gmaps.MockRouter) {
	geocoder := &gmaps.MockGeocoder{Coords: map[string]domain.Coordinates{
		centralAddr:            {Lat: 43.0731, Lng: -89.4012},
		"10 First St, Madison": {Lat: 43.05, Lng: -89.45},
		"20 Second St, Verona": {Lat: 43.10, Lng: -89.35},
	}}
	router := &gmaps.MockRouter{Result: &ports.ProviderRoute{
		WaypointOrder: []int{1, 0},
		Legs: []ports.RouteLeg{
			{DistanceMeters: 1609.34, DurationSeconds: 300},
			{DistanceMeters: 3218.68, DurationSeconds: 600},
			{DistanceMeters: 1609.34, DurationSeconds: 300},
		},
	}}
	return geocoder, router
}

func TestHealth(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected a generated X-Request-Id header")
	}
}

func TestPlanHappyPath(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	body := `{
		"delivery_addresses": ["10 First St, Madison", "20 Second St, Verona"],
		"tip_amounts": [3.0, 1.5]
	}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.CentralLocation != centralAddr {
		t.Errorf("central = %q, want %q", resp.CentralLocation, centralAddr)
	}
	wantOrder := []string{"20 Second St, Verona", "10 First St, Madison"}
	if len(resp.OptimizedRoute) != 2 || resp.OptimizedRoute[0] != wantOrder[0] || resp.OptimizedRoute[1] != wantOrder[1] {
		t.Errorf("optimized_route = %v, want %v", resp.OptimizedRoute, wantOrder)
	}
	if d := resp.TotalDistanceMiles - 4.0; d < -1e-9 || d > 1e-9 {
		t.Errorf("total_distance_miles = %v, want 4.0", resp.TotalDistanceMiles)
	}
	if resp.Estimated {
		t.Error("expected a provider route, not an estimate")
	}
	// Tips are parallel to delivery_addresses and stay with their
	// address after the route is reordered.
	if resp.Stops[0].Tip != 1.5 {
		t.Errorf("tip for %q = %v, want 1.5", resp.Stops[0].Address, resp.Stops[0].Tip)
	}
	if resp.Stops[1].Tip != 3.0 {
		t.Errorf("tip for %q = %v, want 3.0", resp.Stops[1].Address, resp.Stops[1].Tip)
	}
	if resp.Verdict != "worthwhile" {
		t.Errorf("verdict = %q, want worthwhile", resp.Verdict)
	}
	if !strings.HasPrefix(resp.Summary, "Worth it. Profit: $") {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
	if len(resp.FailedAddresses) != 0 {
		t.Errorf("unexpected failures %v", resp.FailedAddresses)
	}
}

func TestPlanCentralOverride(t *testing.T) {
	geocoder, router := defaultMocks()
	geocoder.Coords["5 Hub Ave, Verona"] = domain.Coordinates{Lat: 43.2, Lng: -89.3}
	h := testRouter(t, geocoder, router)

	body := `{
		"central_location": "5 Hub Ave, Verona",
		"delivery_addresses": ["10 First St, Madison", "20 Second St, Verona"]
	}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CentralLocation != "5 Hub Ave, Verona" {
		t.Errorf("central = %q, want override", resp.CentralLocation)
	}
}

func TestPlanReportsPartialFailures(t *testing.T) {
	geocoder, _ := defaultMocks()
	router := &gmaps.MockRouter{Result: &ports.ProviderRoute{
		WaypointOrder: []int{0},
		Legs: []ports.RouteLeg{
			{DistanceMeters: 1609.34, DurationSeconds: 300},
			{DistanceMeters: 1609.34, DurationSeconds: 300},
		},
	}}
	h := testRouter(t, geocoder, router)

	body := `{"delivery_addresses": ["10 First St, Madison", "999 Unknown Rd, Madison"], "tip_amounts": [1.0, 2.0]}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.FailedAddresses) != 1 {
		t.Fatalf("expected 1 failed address, got %v", resp.FailedAddresses)
	}
	if resp.FailedAddresses[0].Reason != string(ports.FailureNoResult) {
		t.Errorf("failure reason = %q", resp.FailedAddresses[0].Reason)
	}
	// The delivered stop keeps its own tip; the failed address's tip is
	// not counted.
	if len(resp.Stops) != 1 || resp.Stops[0].Tip != 1.0 {
		t.Errorf("stops = %+v, want a single stop with tip 1.0", resp.Stops)
	}
}

func TestPlanRejectsBadInput(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"bogus": true}`},
		{"two objects", `{"delivery_addresses": ["10 First St, Madison"]}{}`},
		{"no addresses", `{"raw_text": "  "}`},
		{"negative tip", `{"delivery_addresses": ["10 First St, Madison"], "tip_amounts": [-1]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(tc.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.ErrorKind != "invalid_input" {
				t.Errorf("error_kind = %q, want invalid_input", resp.ErrorKind)
			}
		})
	}
}

func TestPlanMethodNotAllowed(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/routes/plan", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q, want POST", got)
	}
}

func TestPlanExtractionEmpty(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	body := `{"raw_text": "no addresses in here"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp dto.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ErrorKind != "extraction_empty" {
		t.Errorf("error_kind = %q, want extraction_empty", resp.ErrorKind)
	}
}

func TestPlanCentralUnresolved(t *testing.T) {
	geocoder := &gmaps.MockGeocoder{Coords: map[string]domain.Coordinates{
		"10 First St, Madison": {Lat: 43.05, Lng: -89.45},
	}}
	_, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	body := `{"delivery_addresses": ["10 First St, Madison"]}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var resp dto.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ErrorKind != "central_unresolved" {
		t.Errorf("error_kind = %q, want central_unresolved", resp.ErrorKind)
	}
}

func TestPlanNoUsableStops(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	body := `{"delivery_addresses": ["999 Unknown Rd, Madison"]}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/routes/plan", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp dto.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.ErrorKind != "no_usable_stops" {
		t.Errorf("error_kind = %q, want no_usable_stops", resp.ErrorKind)
	}
}

func TestExtractEndpoint(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	body := `{"text": "deliver to 10 First St, Madison\nthen 20 Second St, Verona"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/addresses/extract", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"10 First St, Madison", "20 Second St, Verona"}
	if len(resp.Addresses) != 2 || resp.Addresses[0] != want[0] || resp.Addresses[1] != want[1] {
		t.Errorf("addresses = %v, want %v", resp.Addresses, want)
	}
}

func TestExtractNoMatchesReturnsEmptyList(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/addresses/extract", strings.NewReader(`{"text": "nothing"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); !strings.Contains(body, `"addresses":[]`) {
		t.Errorf("expected empty list, got %s", body)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q, want abc-123", got)
	}
}

func TestUnknownPathsShareOneMetricLabel(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "other", "404"))

	for _, path := range []string{"/nope", "/admin.php", "/v1/routes/unknown"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status for %s = %d, want 404", path, rec.Code)
		}
	}

	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "other", "404"))
	if after != before+3 {
		t.Errorf("other-path counter went %v -> %v, want +3", before, after)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	geocoder, router := defaultMocks()
	h := testRouter(t, geocoder, router)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}