package search

import (
	"context"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// Result is the full outcome of a route search. Direct matches and
// journey options are kept separate; the caller decides presentation.
type Result struct {
	DirectMatches  []Match
	JourneyOptions []JourneyOption
	Suggestions    []string
}

// Orchestrator ties the matchers together and applies the final
// fallback and suggestion policy.
type Orchestrator struct {
	params Params
}

// NewOrchestrator builds an Orchestrator with the given tunables.
func NewOrchestrator(p Params) *Orchestrator {
	return &Orchestrator{params: p}
}

// SearchPoint returns the vehicles within radiusM of center, nearest
// first.
func (o *Orchestrator) SearchPoint(snap fleet.Snapshot, center geo.Point, radiusM float64) []Candidate {
	return Within(snap, center, radiusM)
}

// SearchRoute runs the direct matcher and, when direct coverage is weak
// or absent, attempts journey composition. When both come back empty the
// result carries actionable suggestions from fixed heuristics.
func (o *Orchestrator) SearchRoute(ctx context.Context, snap fleet.Snapshot, origin, dest geo.Point, radiusM float64) Result {
	res := Result{
		DirectMatches: MatchRoute(ctx, snap, origin, dest, radiusM, o.params),
	}

	if o.coverageWeak(res.DirectMatches) {
		res.JourneyOptions = ComposeJourneys(ctx, snap, origin, dest, radiusM, o.params)
	}

	if len(res.DirectMatches) == 0 && len(res.JourneyOptions) == 0 {
		res.Suggestions = noMatchSuggestions(snap)
	}
	return res
}

func (o *Orchestrator) coverageWeak(matches []Match) bool {
	if len(matches) == 0 {
		return true
	}
	// The ranking puts pass-through matches first, not the highest raw
	// score, so scan for the maximum.
	best := 0.0
	for _, m := range matches {
		if m.Route.Score > best {
			best = m.Route.Score
		}
	}
	return best < o.params.GoodEnoughScore
}

func noMatchSuggestions(snap fleet.Snapshot) []string {
	if snap.Len() == 0 {
		return []string{
			"No vehicles are currently reporting positions; try again in a few minutes",
			"Increase the search radius",
		}
	}
	return []string{
		"Increase the search radius",
		"Check the spelling of stop names",
		"Try searching from a nearby main road or bus stop",
	}
}
