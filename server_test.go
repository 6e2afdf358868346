package gpstracker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
	"github.com/santanu-atta03/gps-tracker/metrics"
	"github.com/santanu-atta03/gps-tracker/search"
)

func newTestServer(t *testing.T) (*Server, *fleet.Store) {
	t.Helper()
	store := fleet.NewStore(120, 0, nil)
	orch := search.NewOrchestrator(search.DefaultParams())
	return NewServer(0, store, orch, metrics.NewCollector()), store
}

func seedVehicle(t *testing.T, store *fleet.Store, id string, meta fleet.Metadata, path ...geo.Point) {
	t.Helper()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, p := range path {
		if !store.Ingest(id, fleet.TimestampedPoint{Point: p, Timestamp: base.Add(time.Duration(i) * time.Minute)}, meta) {
			t.Fatalf("seed point %d for %s rejected", i, id)
		}
	}
}

func do(t *testing.T, srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPointSearchValidationItemizesEveryViolation(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/tracker/search?lat=95&lng=200&radius=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("errors = %v, want all three violations", resp.Errors)
	}
	joined := strings.Join(resp.Errors, "; ")
	for _, want := range []string{"lat", "lng", "radius must be a number greater than 0"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors %v missing mention of %q", resp.Errors, want)
		}
	}
}

func TestPointSearchMissingParams(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/tracker/search", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) != 3 {
		t.Fatalf("errors = %v, want lat, lng and radius reported", resp.Errors)
	}
}

func TestPointSearchReturnsNearestFirst(t *testing.T) {
	srv, store := newTestServer(t)
	seedVehicle(t, store, "bus-near", fleet.Metadata{Route: "12C", Driver: "arjun"},
		geo.Point{Lat: 22.5730, Lng: 88.3642})
	seedVehicle(t, store, "bus-close", fleet.Metadata{Route: "44"},
		geo.Point{Lat: 22.5728, Lng: 88.3640})
	seedVehicle(t, store, "bus-far", fleet.Metadata{},
		geo.Point{Lat: 22.6500, Lng: 88.4500})

	rec := do(t, srv, http.MethodGet, "/api/tracker/search?lat=22.5726&lng=88.3639&radius=500", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp pointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if len(resp.Buses) != 2 {
		t.Fatalf("buses = %d, want 2 within radius", len(resp.Buses))
	}
	if resp.Buses[0].DeviceID != "bus-close" || resp.Buses[1].DeviceID != "bus-near" {
		t.Errorf("order = [%s %s], want nearest first", resp.Buses[0].DeviceID, resp.Buses[1].DeviceID)
	}
	if resp.Buses[0].DistanceFromSearch > resp.Buses[1].DistanceFromSearch {
		t.Error("distances not ascending")
	}
	if resp.Buses[1].Route != "12C" || resp.Buses[1].Driver != "arjun" {
		t.Errorf("metadata not echoed: %+v", resp.Buses[1])
	}
	if resp.Metadata.TotalFound != 2 || resp.Metadata.Radius != 500 {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
}

func TestRouteSearchDirectMatch(t *testing.T) {
	srv, store := newTestServer(t)
	seedVehicle(t, store, "bus-1", fleet.Metadata{Route: "S9"},
		geo.Point{Lat: 22.5720, Lng: 88.3630},
		geo.Point{Lat: 22.5850, Lng: 88.3900},
		geo.Point{Lat: 22.6000, Lng: 88.4150},
		geo.Point{Lat: 22.6070, Lng: 88.4335},
	)

	rec := do(t, srv, http.MethodGet,
		"/api/tracker/route?fromLat=22.5726&fromLng=88.3639&toLat=22.6068&toLng=88.4331&radius=1000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp routeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Buses) != 1 {
		t.Fatalf("buses = %d, want 1", len(resp.Buses))
	}
	b := resp.Buses[0]
	if b.DeviceID != "bus-1" || b.Route != "S9" {
		t.Errorf("bus = %+v", b)
	}
	if !b.RouteAnalysis.PassesThrough || !b.RouteAnalysis.CorrectDirection {
		t.Errorf("routeAnalysis = %+v, want passing through in the correct direction", b.RouteAnalysis)
	}
	if b.DistanceFromStart != b.RouteAnalysis.FromDistanceM || b.DistanceFromEnd != b.RouteAnalysis.ToDistanceM {
		t.Error("distance fields disagree with route analysis")
	}
	if len(resp.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none when a bus matched", resp.Suggestions)
	}
	if resp.Metadata.RouteBusesCount != 1 {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
}

func TestRouteSearchNoMatchSuggestions(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet,
		"/api/tracker/route?fromLat=22.5726&fromLng=88.3639&toLat=22.6068&toLng=88.4331&radius=1000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp routeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Buses) != 0 || len(resp.Journeys) != 0 {
		t.Fatalf("unexpected matches on an empty fleet: %+v", resp)
	}
	if len(resp.Suggestions) == 0 {
		t.Error("want suggestions when nothing was found")
	}
}

func TestIngestEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/tracker/location",
		`{"deviceId":"bus-9","coordinates":[88.3639,22.5726],"timestamp":1748770800,"route":"7B"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp ingestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Accepted || resp.DeviceID != "bus-9" {
		t.Errorf("resp = %+v", resp)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d vehicles, want 1", store.Len())
	}

	// An older point is acknowledged but not stored.
	rec = do(t, srv, http.MethodPost, "/api/tracker/location",
		`{"deviceId":"bus-9","coordinates":[88.3700,22.5800],"timestamp":1748770700}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Accepted {
		t.Error("out-of-order point reported as accepted")
	}

	rec = do(t, srv, http.MethodPost, "/api/tracker/location", `{"coordinates":"garbage"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed payload status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/api/tracker/location", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	seedVehicle(t, store, "bus-1", fleet.Metadata{}, geo.Point{Lat: 22.5726, Lng: 88.3639})

	rec := do(t, srv, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.TrackedVehicles != 1 || resp.LatestPositionEpoch == 0 {
		t.Errorf("health = %+v", resp)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodOptions, "/api/tracker/search", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for preflight", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv, _ := newTestServer(t)

	do(t, srv, http.MethodGet, "/api/tracker/search?lat=22.5726&lng=88.3639&radius=500", "")
	rec := do(t, srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `tracker_searches_total{kind="point"} 1`) {
		t.Error("point search not counted")
	}
}
