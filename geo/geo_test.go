package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	kolkata := Point{Lat: 22.5726, Lng: 88.3639}
	saltLake := Point{Lat: 22.6068, Lng: 88.4331}

	d := Distance(kolkata, saltLake)
	// Roughly 8 km between the two points.
	if d < 7000 || d > 9000 {
		t.Errorf("expected ~8000m, got %g", d)
	}

	if got := Distance(kolkata, kolkata); got != 0 {
		t.Errorf("distance to self should be 0, got %g", got)
	}

	forward := Distance(kolkata, saltLake)
	backward := Distance(saltLake, kolkata)
	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("distance not symmetric: %g vs %g", forward, backward)
	}
}

func TestBearing(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{name: "due north", to: Point{Lat: 1, Lng: 0}, want: 0},
		{name: "due east", to: Point{Lat: 0, Lng: 1}, want: 90},
		{name: "due south", to: Point{Lat: -1, Lng: 0}, want: 180},
		{name: "due west", to: Point{Lat: 0, Lng: -1}, want: 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bearing(origin, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestBearingIdenticalPoints(t *testing.T) {
	p := Point{Lat: 22.5726, Lng: 88.3639}
	if _, err := Bearing(p, p); err == nil {
		t.Error("expected error for identical points")
	}
}

func TestAngularDiff(t *testing.T) {
	tests := []struct {
		b1, b2, want float64
	}{
		{0, 0, 0},
		{10, 350, 20},
		{90, 270, 180},
		{359, 1, 2},
	}
	for _, tt := range tests {
		if got := AngularDiff(tt.b1, tt.b2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngularDiff(%g,%g) = %g, want %g", tt.b1, tt.b2, got, tt.want)
		}
	}
}

func TestNearestPointOnPath(t *testing.T) {
	path := []Point{
		{Lat: 22.5726, Lng: 88.3639},
		{Lat: 22.5900, Lng: 88.4000},
		{Lat: 22.6068, Lng: 88.4331},
	}

	idx, dist := NearestPointOnPath(path, Point{Lat: 22.5910, Lng: 88.4010})
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if dist > 200 {
		t.Errorf("expected a close match, got %gm", dist)
	}
}

func TestNearestPointOnPathEmpty(t *testing.T) {
	idx, dist := NearestPointOnPath(nil, Point{Lat: 1, Lng: 1})
	if idx != -1 {
		t.Errorf("expected index -1 for empty path, got %d", idx)
	}
	if !math.IsInf(dist, 1) {
		t.Errorf("expected +Inf distance for empty path, got %g", dist)
	}
}

func TestNewPointValidation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{name: "valid", lat: 22.5726, lng: 88.3639},
		{name: "lat too high", lat: 90.1, lng: 0, wantErr: true},
		{name: "lat too low", lat: -90.1, lng: 0, wantErr: true},
		{name: "lng too high", lat: 0, lng: 180.5, wantErr: true},
		{name: "lng too low", lat: 0, lng: -181, wantErr: true},
		{name: "nan lat", lat: math.NaN(), lng: 0, wantErr: true},
		{name: "inf lng", lat: 0, lng: math.Inf(1), wantErr: true},
		{name: "boundary lat", lat: 90, lng: -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPoint(tt.lat, tt.lng)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	path := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.01},
		{Lat: 0, Lng: 0.02},
	}
	full := PathLength(path, 0, 2)
	half := PathLength(path, 0, 1)
	if math.Abs(full-2*half) > 1 {
		t.Errorf("expected segments to sum: full=%g half=%g", full, half)
	}
	if got := PathLength(path, 2, 0); math.Abs(got-full) > 1e-9 {
		t.Errorf("reversed indices should measure the same span")
	}
	if got := PathLength(path, 1, 1); got != 0 {
		t.Errorf("zero span should be 0, got %g", got)
	}
}
