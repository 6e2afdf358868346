package search

import (
	"math"

	"github.com/santanu-atta03/gps-tracker/geo"
)

// RouteMatch describes how well one vehicle's trajectory serves a
// desired origin-to-destination trip. Recomputed per request, never
// persisted.
type RouteMatch struct {
	FromDistanceM    float64 `json:"fromDistance"`
	ToDistanceM      float64 `json:"toDistance"`
	PassesThrough    bool    `json:"passesThrough"`
	CorrectDirection bool    `json:"isCorrectDirection"`
	Score            float64 `json:"score"`

	fromIndex int
	toIndex   int
}

// AlignRoute scores a trajectory path against a trip. proximityM is the
// distance within which an endpoint counts as served; directionTolDeg is
// the allowed angular difference for direction correctness.
//
// PassesThrough requires both endpoints within proximity AND the
// destination's nearest trajectory point to occur after the origin's, so
// a vehicle driving the route backwards does not qualify.
func AlignRoute(path []geo.Point, origin, dest geo.Point, proximityM, directionTolDeg float64) RouteMatch {
	fromIdx, fromDist := geo.NearestPointOnPath(path, origin)
	toIdx, toDist := geo.NearestPointOnPath(path, dest)

	m := RouteMatch{
		FromDistanceM: fromDist,
		ToDistanceM:   toDist,
		fromIndex:     fromIdx,
		toIndex:       toIdx,
	}
	if len(path) == 0 {
		return m
	}

	m.PassesThrough = fromDist <= proximityM && toDist <= proximityM && fromIdx < toIdx

	if want, err := geo.Bearing(origin, dest); err == nil {
		next := fromIdx + 1
		if next > len(path)-1 {
			next = len(path) - 1
		}
		if have, err := geo.Bearing(path[fromIdx], path[next]); err == nil {
			m.CorrectDirection = geo.AngularDiff(want, have) <= directionTolDeg
		}
	}

	// The direction bonus needs at least one endpoint in range; heading
	// the right way in another city is not a match.
	score := 0.4*proximityScore(fromDist, proximityM) + 0.4*proximityScore(toDist, proximityM)
	if m.CorrectDirection && (fromDist <= proximityM || toDist <= proximityM) {
		score += 0.2
	}
	m.Score = clamp01(score)
	return m
}

func proximityScore(d, threshold float64) float64 {
	if threshold <= 0 || math.IsInf(d, 1) {
		return 0
	}
	return math.Max(0, 1-d/threshold)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
