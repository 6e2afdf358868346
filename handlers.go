package gpstracker

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/ingest"
	"github.com/santanu-atta03/gps-tracker/search"
)

const maxIngestBody = 64 << 10

// handlePointSearch serves GET /api/tracker/search: vehicles within a
// radius of a point, nearest first.
func (s *Server) handlePointSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, violations := parsePointQuery(r.URL.Query())
	if len(violations) > 0 {
		writeValidationErrors(w, violations)
		return
	}

	start := time.Now()
	snap := s.store.Snapshot()
	candidates := s.orch.SearchPoint(snap, q.center(), q.Radius)
	if s.metrics != nil {
		s.metrics.SearchServed("point", time.Since(start))
		if len(candidates) == 0 {
			s.metrics.SearchesNoMatch.Inc()
		}
	}

	buses := make([]busResult, 0, len(candidates))
	for _, c := range candidates {
		cur, _ := c.Trajectory.Current()
		buses = append(buses, busResult{
			DeviceID:           c.VehicleID,
			Location:           cur.Point,
			DistanceFromSearch: c.DistanceM,
			Route:              c.Trajectory.Meta.Route,
			Driver:             c.Trajectory.Meta.Driver,
			Status:             c.Trajectory.Meta.Status,
		})
	}
	writeJSON(w, http.StatusOK, pointResponse{
		Success: true,
		Buses:   buses,
		Metadata: pointMetadata{
			SearchLocation: q.center(),
			Radius:         q.Radius,
			TotalFound:     len(buses),
		},
	})
}

// handleRouteSearch serves GET /api/tracker/route: direct vehicles along
// an origin-destination trip, with journey composition as fallback.
func (s *Server) handleRouteSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, violations := parseRouteQuery(r.URL.Query())
	if len(violations) > 0 {
		writeValidationErrors(w, violations)
		return
	}

	start := time.Now()
	snap := s.store.Snapshot()
	result := s.orch.SearchRoute(r.Context(), snap, q.origin(), q.dest(), q.Radius)
	if s.metrics != nil {
		s.metrics.SearchServed("route", time.Since(start))
		s.metrics.JourneysComposed.Add(float64(len(result.JourneyOptions)))
		if len(result.DirectMatches) == 0 && len(result.JourneyOptions) == 0 {
			s.metrics.SearchesNoMatch.Inc()
		}
	}

	buses := make([]routeBusResult, 0, len(result.DirectMatches))
	for _, m := range result.DirectMatches {
		buses = append(buses, routeBusView(m))
	}
	writeJSON(w, http.StatusOK, routeResponse{
		Success:     true,
		Buses:       buses,
		Journeys:    result.JourneyOptions,
		Suggestions: result.Suggestions,
		Metadata: routeMetadata{
			FromLocation:    q.origin(),
			ToLocation:      q.dest(),
			Radius:          q.Radius,
			RouteBusesCount: len(buses),
		},
	})
}

func routeBusView(m search.Match) routeBusResult {
	cur, _ := m.Trajectory.Current()
	return routeBusResult{
		DeviceID:          m.VehicleID,
		Location:          cur.Point,
		Route:             m.Trajectory.Meta.Route,
		Driver:            m.Trajectory.Meta.Driver,
		Status:            m.Trajectory.Meta.Status,
		RouteAnalysis:     m.Route,
		DistanceFromStart: m.Route.FromDistanceM,
		DistanceFromEnd:   m.Route.ToDistanceM,
	}
}

// handleIngest serves POST /api/tracker/location: one position report
// from a tracking client. Malformed payloads get a 400 with the reason;
// an out-of-order point is acknowledged but not stored.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBody))
	if err != nil {
		writeValidationErrors(w, []string{"unreadable request body"})
		return
	}

	update, err := ingest.ParsePosition(body)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PayloadRejected("http")
		}
		log.Printf("rejected position payload: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{err.Error()}})
		return
	}

	accepted := s.store.Ingest(update.DeviceID, fleet.TimestampedPoint{
		Point:     update.Point,
		Timestamp: update.Timestamp,
	}, update.Meta)

	writeJSON(w, http.StatusOK, ingestResponse{
		Success:  true,
		Accepted: accepted,
		DeviceID: update.DeviceID,
	})
}
