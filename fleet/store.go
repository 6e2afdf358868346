package fleet

import (
	"sync"
	"time"
)

// StoreMetrics receives ingestion counters. Implemented by the metrics
// collector; a nil implementation is allowed.
type StoreMetrics interface {
	PointIngested()
	PointDroppedOutOfOrder()
	FleetSize(n int)
}

// Store holds the current trajectory of every tracked vehicle. The
// retention bounds are fixed at construction.
type Store struct {
	mu        sync.RWMutex
	vehicles  map[string]*Trajectory
	maxPoints int
	maxAge    time.Duration
	metrics   StoreMetrics

	now func() time.Time // test seam
}

// NewStore builds a Store retaining at most maxPoints per vehicle and
// evicting points older than maxAge. maxAge <= 0 disables age eviction.
func NewStore(maxPoints int, maxAge time.Duration, m StoreMetrics) *Store {
	if maxPoints <= 0 {
		maxPoints = 120
	}
	return &Store{
		vehicles:  map[string]*Trajectory{},
		maxPoints: maxPoints,
		maxAge:    maxAge,
		metrics:   m,
		now:       time.Now,
	}
}

// Ingest appends a position to a vehicle's trajectory, creating the
// vehicle entry if new. A point older than the last recorded timestamp
// is dropped and false is returned; stale network delivery is expected
// and is not an error. Metadata fields that are set replace the stored
// ones.
func (s *Store) Ingest(vehicleID string, p TimestampedPoint, meta Metadata) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.vehicles[vehicleID]
	if prev != nil {
		if last, ok := prev.Current(); ok && p.Timestamp.Before(last.Timestamp) {
			if s.metrics != nil {
				s.metrics.PointDroppedOutOfOrder()
			}
			return false
		}
	}

	// Build a fresh trajectory so snapshots holding the previous value
	// are never mutated underneath them.
	next := &Trajectory{VehicleID: vehicleID}
	if prev != nil {
		next.Meta = prev.Meta
		next.Points = append(next.Points, prev.Points...)
	}
	next.Points = append(next.Points, p)
	next.Meta = mergeMeta(next.Meta, meta)
	next.Points = s.evict(next.Points, p.Timestamp)

	s.vehicles[vehicleID] = next
	if s.metrics != nil {
		s.metrics.PointIngested()
		s.metrics.FleetSize(len(s.vehicles))
	}
	return true
}

// Snapshot captures a consistent view of the fleet. The returned value
// is safe to read while ingestion continues.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make(map[string]*Trajectory, len(s.vehicles))
	for id, t := range s.vehicles {
		view[id] = t
	}
	return Snapshot{vehicles: view, takenAt: s.now(), maxAge: s.maxAge}
}

// Len returns the number of tracked vehicles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

// LatestTimestamp returns the newest point timestamp across the fleet,
// or the zero time when the fleet is empty. Used by the health endpoint.
func (s *Store) LatestTimestamp() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest time.Time
	for _, t := range s.vehicles {
		if last, ok := t.Current(); ok && last.Timestamp.After(latest) {
			latest = last.Timestamp
		}
	}
	return latest
}

func (s *Store) evict(points []TimestampedPoint, newest time.Time) []TimestampedPoint {
	if s.maxAge > 0 {
		cutoff := newest.Add(-s.maxAge)
		drop := 0
		for drop < len(points)-1 && points[drop].Timestamp.Before(cutoff) {
			drop++
		}
		points = points[drop:]
	}
	if len(points) > s.maxPoints {
		points = points[len(points)-s.maxPoints:]
	}
	return points
}

func mergeMeta(base, update Metadata) Metadata {
	if update.Route != "" {
		base.Route = update.Route
	}
	if update.Driver != "" {
		base.Driver = update.Driver
	}
	if update.Status != "" {
		base.Status = update.Status
	}
	return base
}
