package search

import (
	"context"
	"sort"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// LegKind identifies a journey segment type.
type LegKind string

const (
	LegBus  LegKind = "bus"
	LegWalk LegKind = "walk"
	LegWait LegKind = "wait"
)

// JourneyLeg is one segment of a composed journey.
type JourneyLeg struct {
	Kind            LegKind   `json:"kind"`
	From            geo.Point `json:"from"`
	To              geo.Point `json:"to"`
	VehicleID       string    `json:"vehicleId,omitempty"`
	DurationMinutes float64   `json:"durationMinutes"`
	DistanceM       float64   `json:"distanceM"`
}

// JourneyOption is a complete candidate itinerary from origin to
// destination.
type JourneyOption struct {
	Legs                 []JourneyLeg `json:"legs"`
	TransferCount        int          `json:"transferCount"`
	TotalDurationMinutes float64      `json:"totalDurationMinutes"`
	TotalWalkDistanceM   float64      `json:"totalWalkDistanceM"`
	Score                float64      `json:"score"`
}

// ComposeJourneys searches for multi-leg itineraries connecting origin
// to destination over the live fleet, up to MaxTransfers bus boardings.
// The search is bounded by Params.NodeBudget and by ctx; when either
// runs out the best options found so far are returned. An empty slice
// means no journey was found, which is a legitimate outcome rather than
// an error.
func ComposeJourneys(ctx context.Context, snap fleet.Snapshot, origin, dest geo.Point, radiusM float64, p Params) []JourneyOption {
	c := &journeySearch{
		p:      p,
		dest:   dest,
		budget: p.NodeBudget,
		ctx:    ctx,
	}

	// Candidate first legs: vehicles whose trajectory comes within the
	// search radius of the origin.
	var starts []boarding
	snap.Each(func(t *fleet.Trajectory) {
		path := t.Path()
		idx, d := geo.NearestPointOnPath(path, origin)
		if idx >= 0 && d <= radiusM {
			starts = append(starts, boarding{traj: t, path: path, index: idx, gapM: d})
		}
	})
	sort.Slice(starts, func(i, j int) bool {
		if starts[i].gapM != starts[j].gapM {
			return starts[i].gapM < starts[j].gapM
		}
		return starts[i].traj.VehicleID < starts[j].traj.VehicleID
	})

	for _, b := range starts {
		if c.exhausted() {
			break
		}
		var legs []JourneyLeg
		if b.gapM > 0 {
			legs = append(legs, walkLeg(origin, b.path[b.index], b.gapM, p))
		}
		used := map[string]bool{b.traj.VehicleID: true}
		c.extend(snap, b, legs, used, 0)
	}

	return c.ranked()
}

type boarding struct {
	traj  *fleet.Trajectory
	path  []geo.Point
	index int
	gapM  float64
}

type journeySearch struct {
	p       Params
	dest    geo.Point
	budget  int
	ctx     context.Context
	options []JourneyOption
}

func (c *journeySearch) exhausted() bool {
	return c.budget <= 0 || c.ctx.Err() != nil
}

// extend grows a chain riding b's vehicle, emitting a completed journey
// when the trajectory reaches walking range of the destination and
// recursing across transfers otherwise.
func (c *journeySearch) extend(snap fleet.Snapshot, b boarding, legs []JourneyLeg, used map[string]bool, transfers int) {
	if c.exhausted() {
		return
	}
	c.budget--

	// Termination: does this vehicle get within walking range?
	relIdx, destDist := geo.NearestPointOnPath(b.path[b.index:], c.dest)
	if relIdx >= 0 && destDist <= c.p.WalkThresholdM {
		alight := b.index + relIdx
		done := append(append([]JourneyLeg{}, legs...), busLeg(b, alight, c.p))
		if destDist > 0 {
			done = append(done, walkLeg(b.path[alight], c.dest, destDist, c.p))
		}
		c.options = append(c.options, buildOption(done))
	}

	if transfers >= c.p.MaxTransfers {
		return
	}

	currentBest := destDist // how close this chain already gets

	snap.Each(func(next *fleet.Trajectory) {
		if c.exhausted() || used[next.VehicleID] {
			return
		}
		nextPath := next.Path()
		if len(nextPath) == 0 {
			return
		}

		// A continuing leg must make progress toward the destination.
		_, nextBest := geo.NearestPointOnPath(nextPath, c.dest)
		if nextBest >= currentBest {
			return
		}

		alight, join, gap := c.bestTransfer(b.path, b.index, nextPath)
		if alight < 0 {
			return
		}

		chained := append(append([]JourneyLeg{}, legs...), busLeg(b, alight, c.p))
		if gap > 0 {
			chained = append(chained, walkLeg(b.path[alight], nextPath[join], gap, c.p))
		}
		chained = append(chained, waitLeg(nextPath[join], c.p))

		used[next.VehicleID] = true
		c.extend(snap, boarding{traj: next, path: nextPath, index: join}, chained, used, transfers+1)
		delete(used, next.VehicleID)
	})
}

// bestTransfer finds the closest pair of points between the current
// trajectory (after boarding) and a candidate next trajectory, within
// the transfer radius. Each pair examined consumes search budget.
func (c *journeySearch) bestTransfer(path []geo.Point, boardIdx int, nextPath []geo.Point) (alight, join int, gapM float64) {
	alight, join = -1, -1
	best := c.p.TransferRadiusM
	for i := boardIdx + 1; i < len(path); i++ {
		for j := range nextPath {
			if c.budget <= 0 {
				return alight, join, best
			}
			c.budget--
			if d := geo.Distance(path[i], nextPath[j]); d <= best {
				best = d
				alight, join = i, j
			}
		}
	}
	return alight, join, best
}

func (c *journeySearch) ranked() []JourneyOption {
	sort.Slice(c.options, func(i, j int) bool {
		a, b := c.options[i], c.options[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.TransferCount != b.TransferCount {
			return a.TransferCount < b.TransferCount
		}
		if a.TotalDurationMinutes != b.TotalDurationMinutes {
			return a.TotalDurationMinutes < b.TotalDurationMinutes
		}
		return firstVehicle(a) < firstVehicle(b)
	})
	if len(c.options) > c.p.TopKJourneys {
		c.options = c.options[:c.p.TopKJourneys]
	}
	return c.options
}

func busLeg(b boarding, alight int, p Params) JourneyLeg {
	dist := geo.PathLength(b.path, b.index, alight)
	return JourneyLeg{
		Kind:            LegBus,
		From:            b.path[b.index],
		To:              b.path[alight],
		VehicleID:       b.traj.VehicleID,
		DurationMinutes: dist / p.BusSpeedMPM,
		DistanceM:       dist,
	}
}

func walkLeg(from, to geo.Point, distM float64, p Params) JourneyLeg {
	return JourneyLeg{
		Kind:            LegWalk,
		From:            from,
		To:              to,
		DurationMinutes: distM / p.WalkSpeedMPM,
		DistanceM:       distM,
	}
}

func waitLeg(at geo.Point, p Params) JourneyLeg {
	return JourneyLeg{
		Kind:            LegWait,
		From:            at,
		To:              at,
		DurationMinutes: p.TransferWaitMinutes,
	}
}

func buildOption(legs []JourneyLeg) JourneyOption {
	o := JourneyOption{Legs: legs}
	buses := 0
	for _, l := range legs {
		o.TotalDurationMinutes += l.DurationMinutes
		if l.Kind == LegWalk {
			o.TotalWalkDistanceM += l.DistanceM
		}
		if l.Kind == LegBus {
			buses++
		}
	}
	if buses > 0 {
		o.TransferCount = buses - 1
	}
	o.Score = scoreJourney(o.TotalDurationMinutes, o.TransferCount, o.TotalWalkDistanceM)
	return o
}

func scoreJourney(totalMinutes float64, transfers int, walkM float64) float64 {
	s := 100 - 0.5*totalMinutes - 10*float64(transfers) - 0.01*walkM
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func firstVehicle(o JourneyOption) string {
	for _, l := range o.Legs {
		if l.Kind == LegBus {
			return l.VehicleID
		}
	}
	return ""
}
