package search

import (
	"sort"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// Candidate is one vehicle inside a radius query, measured from its
// current position.
type Candidate struct {
	VehicleID  string
	DistanceM  float64
	Trajectory *fleet.Trajectory
}

// Within returns the vehicles whose current position lies within radiusM
// of center, sorted ascending by distance with vehicle ID as tie-break.
// Linear in fleet size; callers at larger scales can substitute a
// spatial index behind the same contract.
func Within(snap fleet.Snapshot, center geo.Point, radiusM float64) []Candidate {
	var out []Candidate
	snap.Each(func(t *fleet.Trajectory) {
		cur, ok := t.Current()
		if !ok {
			return
		}
		d := geo.Distance(cur.Point, center)
		if d <= radiusM {
			out = append(out, Candidate{VehicleID: t.VehicleID, DistanceM: d, Trajectory: t})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceM != out[j].DistanceM {
			return out[i].DistanceM < out[j].DistanceM
		}
		return out[i].VehicleID < out[j].VehicleID
	})
	return out
}
