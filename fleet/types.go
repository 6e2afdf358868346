package fleet

import (
	"time"

	"github.com/santanu-atta03/gps-tracker/geo"
)

// TimestampedPoint is one recorded vehicle position.
type TimestampedPoint struct {
	Point     geo.Point `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// Metadata carries opaque passthrough fields reported alongside a
// position update. The engine never interprets them; they are echoed
// back in search responses.
type Metadata struct {
	Route  string `json:"route,omitempty"`
	Driver string `json:"driver,omitempty"`
	Status string `json:"status,omitempty"`
}

// Trajectory is the bounded, timestamp-ordered recent path of one
// vehicle. Instances handed out in a Snapshot are immutable; the Store
// swaps in a fresh copy on every accepted ingest.
type Trajectory struct {
	VehicleID string
	Points    []TimestampedPoint
	Meta      Metadata
}

// Current returns the most recent recorded point.
func (t *Trajectory) Current() (TimestampedPoint, bool) {
	if t == nil || len(t.Points) == 0 {
		return TimestampedPoint{}, false
	}
	return t.Points[len(t.Points)-1], true
}

// Path returns the trajectory as a bare coordinate sequence, oldest first.
func (t *Trajectory) Path() []geo.Point {
	if t == nil {
		return nil
	}
	path := make([]geo.Point, len(t.Points))
	for i, p := range t.Points {
		path[i] = p.Point
	}
	return path
}

// Snapshot is a consistent point-in-time view of the fleet. It is safe
// for concurrent reads and unaffected by ingestion that happens after it
// was taken.
type Snapshot struct {
	vehicles map[string]*Trajectory
	takenAt  time.Time
	maxAge   time.Duration
}

// Get returns the trajectory for a vehicle, or nil if unknown.
func (s Snapshot) Get(vehicleID string) *Trajectory {
	return s.vehicles[vehicleID]
}

// Len returns the number of vehicles in the snapshot.
func (s Snapshot) Len() int { return len(s.vehicles) }

// TakenAt reports when the snapshot was captured.
func (s Snapshot) TakenAt() time.Time { return s.takenAt }

// Each calls fn for every live vehicle trajectory in the snapshot.
// Vehicles whose latest point is older than the store's max point age at
// capture time are skipped; a transmitter that went silent drops out of
// searches without waiting for its next ingest. Iteration order is
// unspecified.
func (s Snapshot) Each(fn func(*Trajectory)) {
	for _, t := range s.vehicles {
		if s.maxAge > 0 {
			if last, ok := t.Current(); ok && last.Timestamp.Before(s.takenAt.Add(-s.maxAge)) {
				continue
			}
		}
		fn(t)
	}
}
