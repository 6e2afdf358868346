package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned for latitudes outside [-90,90],
// longitudes outside [-180,180], or non-finite values. Out-of-range
// input is rejected, never clamped.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is the canonical coordinate pair. All ingestion formats are
// normalized to this shape before any math is done on them.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewPoint validates and builds a Point.
func NewPoint(lat, lng float64) (Point, error) {
	p := Point{Lat: lat, Lng: lng}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks the coordinate ranges.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%w: non-finite value (%v, %v)", ErrInvalidCoordinate, p.Lat, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidCoordinate, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.Lat, p.Lng)
}
