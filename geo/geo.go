package geo

import (
	"errors"
	"math"
)

const earthRadiusM = 6371000.0

// ErrIdenticalPoints is returned by Bearing when both points coincide;
// the initial bearing is undefined there.
var ErrIdenticalPoints = errors.New("bearing undefined for identical points")

// Distance returns the great-circle (haversine) distance between a and b
// in meters. Symmetric; Distance(a,a) == 0.
func Distance(a, b Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// Bearing returns the initial bearing from a to b in degrees [0,360).
func Bearing(a, b Point) (float64, error) {
	if a.Lat == b.Lat && a.Lng == b.Lng {
		return 0, ErrIdenticalPoints
	}
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLng)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360), nil
}

// AngularDiff returns the absolute difference between two bearings,
// folded into [0,180].
func AngularDiff(b1, b2 float64) float64 {
	d := math.Mod(math.Abs(b1-b2), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// NearestPointOnPath returns the index of the path vertex closest to
// target and its distance in meters. An empty path yields (-1, +Inf).
func NearestPointOnPath(path []Point, target Point) (int, float64) {
	bestIdx := -1
	bestDist := math.Inf(1)
	for i, p := range path {
		if d := Distance(p, target); d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}
	return bestIdx, bestDist
}

// PathLength returns the cumulative vertex-to-vertex distance in meters
// between two indices of a path. Indices outside the path are clamped.
func PathLength(path []Point, from, to int) float64 {
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	if to > len(path)-1 {
		to = len(path) - 1
	}
	total := 0.0
	for i := from; i < to; i++ {
		total += Distance(path[i], path[i+1])
	}
	return total
}
