package search

import (
	"context"
	"sort"
	"sync"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// Match pairs a vehicle with its route-alignment result.
type Match struct {
	VehicleID  string
	Trajectory *fleet.Trajectory
	Route      RouteMatch
}

// MatchRoute scores every candidate vehicle against the trip and returns
// the ranked direct matches. Candidates are restricted to vehicles whose
// trajectory comes within radiusM of origin or destination; this only
// prunes vehicles that would score zero anyway, so the ranking is
// unchanged. Scoring is fanned out across a bounded worker pool.
//
// Order: PassesThrough first, then CorrectDirection, then score
// descending, then origin distance ascending, then vehicle ID.
func MatchRoute(ctx context.Context, snap fleet.Snapshot, origin, dest geo.Point, radiusM float64, p Params) []Match {
	proximity := p.proximity(radiusM)

	var candidates []*fleet.Trajectory
	snap.Each(func(t *fleet.Trajectory) {
		path := t.Path()
		if _, d := geo.NearestPointOnPath(path, origin); d <= proximity {
			candidates = append(candidates, t)
			return
		}
		if _, d := geo.NearestPointOnPath(path, dest); d <= proximity {
			candidates = append(candidates, t)
		}
	})
	if len(candidates) == 0 {
		return nil
	}

	jobs := make(chan *fleet.Trajectory)
	results := make(chan Match, len(candidates))
	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rm := AlignRoute(t.Path(), origin, dest, proximity, p.DirectionToleranceDeg)
				results <- Match{VehicleID: t.VehicleID, Trajectory: t, Route: rm}
			}
		}()
	}
	for _, t := range candidates {
		select {
		case jobs <- t:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	matches := make([]Match, 0, len(candidates))
	for m := range results {
		if m.Route.Score > 0 {
			matches = append(matches, m)
		}
	}
	sortMatches(matches)
	return matches
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i].Route, matches[j].Route
		if a.PassesThrough != b.PassesThrough {
			return a.PassesThrough
		}
		if a.CorrectDirection != b.CorrectDirection {
			return a.CorrectDirection
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.FromDistanceM != b.FromDistanceM {
			return a.FromDistanceM < b.FromDistanceM
		}
		return matches[i].VehicleID < matches[j].VehicleID
	})
}
