package search

import "runtime"

// Params holds the engine tunables. The zero value is not usable; start
// from DefaultParams and override from configuration.
type Params struct {
	// ProximityThresholdM caps how far a trajectory may pass from a trip
	// endpoint and still count as serving it. When zero, the query
	// radius is used.
	ProximityThresholdM float64

	// DirectionToleranceDeg is the maximum angular difference between
	// the desired travel bearing and the vehicle's local bearing for the
	// match to count as direction-correct.
	DirectionToleranceDeg float64

	// GoodEnoughScore is the direct-match score below which journey
	// composition is attempted.
	GoodEnoughScore float64

	// MaxTransfers bounds the number of bus-to-bus transfers in a
	// composed journey.
	MaxTransfers int

	// WalkThresholdM is the largest gap a rider is asked to walk at the
	// end of a journey or across a transfer.
	WalkThresholdM float64

	// TransferRadiusM is how close two trajectories must come for a
	// transfer between their vehicles to be considered.
	TransferRadiusM float64

	WalkSpeedMPM        float64 // walking speed, meters per minute
	BusSpeedMPM         float64 // assumed bus speed along its path
	TransferWaitMinutes float64 // headway estimate charged per transfer

	// TopKJourneys caps the number of journey options returned.
	TopKJourneys int

	// NodeBudget bounds the transfer search; when exhausted the best
	// partial result found so far is returned.
	NodeBudget int

	// Workers bounds direct-match fan-out. Zero means GOMAXPROCS.
	Workers int
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		DirectionToleranceDeg: 90,
		GoodEnoughScore:       0.5,
		MaxTransfers:          2,
		WalkThresholdM:        500,
		TransferRadiusM:       300,
		WalkSpeedMPM:          80,
		BusSpeedMPM:           500,
		TransferWaitMinutes:   5,
		TopKJourneys:          5,
		NodeBudget:            10000,
		Workers:               runtime.GOMAXPROCS(0),
	}
}

func (p Params) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (p Params) proximity(radiusM float64) float64 {
	if p.ProximityThresholdM > 0 {
		return p.ProximityThresholdM
	}
	return radiusM
}
