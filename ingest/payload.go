package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// ErrInvalidCoordinateFormat marks a position payload whose coordinate
// shape could not be recognized. Distinct from geo.ErrInvalidCoordinate,
// which marks a recognized shape carrying out-of-range values.
var ErrInvalidCoordinateFormat = errors.New("invalid coordinate format")

// PositionUpdate is a normalized position report ready for ingestion.
type PositionUpdate struct {
	DeviceID  string
	Point     geo.Point
	Timestamp time.Time
	Meta      fleet.Metadata
}

type rawPosition struct {
	DeviceID    string          `json:"deviceId"`
	DeviceIDAlt string          `json:"deviceID"`
	VehicleID   string          `json:"vehicleId"`
	Coordinates json.RawMessage `json:"coordinates"`
	Location    json.RawMessage `json:"location"`
	Timestamp   json.RawMessage `json:"timestamp"`
	Route       string          `json:"route"`
	Driver      string          `json:"driver"`
	Status      string          `json:"status"`
}

// ParsePosition normalizes one JSON position payload. Coordinates may be
// a GeoJSON-style [longitude, latitude] array, a {lat,lng} object, or a
// {latitude,longitude} object; anything else fails with
// ErrInvalidCoordinateFormat. Out-of-range values fail with
// geo.ErrInvalidCoordinate.
func ParsePosition(data []byte) (PositionUpdate, error) {
	var raw rawPosition
	if err := json.Unmarshal(data, &raw); err != nil {
		return PositionUpdate{}, fmt.Errorf("%w: %v", ErrInvalidCoordinateFormat, err)
	}

	id := raw.DeviceID
	if id == "" {
		id = raw.DeviceIDAlt
	}
	if id == "" {
		id = raw.VehicleID
	}
	if id == "" {
		return PositionUpdate{}, fmt.Errorf("%w: missing device id", ErrInvalidCoordinateFormat)
	}

	coords := raw.Coordinates
	if len(coords) == 0 {
		coords = raw.Location
	}
	point, err := ParseCoordinates(coords)
	if err != nil {
		return PositionUpdate{}, err
	}

	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return PositionUpdate{}, err
	}

	return PositionUpdate{
		DeviceID:  id,
		Point:     point,
		Timestamp: ts,
		Meta:      fleet.Metadata{Route: raw.Route, Driver: raw.Driver, Status: raw.Status},
	}, nil
}

// ParseCoordinates normalizes the accepted coordinate shapes to a
// canonical geo.Point.
func ParseCoordinates(raw json.RawMessage) (geo.Point, error) {
	if len(raw) == 0 {
		return geo.Point{}, fmt.Errorf("%w: missing coordinates", ErrInvalidCoordinateFormat)
	}

	// GeoJSON convention: [longitude, latitude].
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) < 2 {
			return geo.Point{}, fmt.Errorf("%w: coordinate array needs 2 elements, got %d", ErrInvalidCoordinateFormat, len(arr))
		}
		return geo.NewPoint(arr[1], arr[0])
	}

	var obj struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return geo.Point{}, fmt.Errorf("%w: %v", ErrInvalidCoordinateFormat, err)
	}
	switch {
	case obj.Lat != nil && obj.Lng != nil:
		return geo.NewPoint(*obj.Lat, *obj.Lng)
	case obj.Latitude != nil && obj.Longitude != nil:
		return geo.NewPoint(*obj.Latitude, *obj.Longitude)
	}
	return geo.Point{}, fmt.Errorf("%w: unrecognized coordinate shape", ErrInvalidCoordinateFormat)
}

// parseTimestamp accepts unix seconds, unix milliseconds, or RFC3339.
// A missing timestamp means "now" - many trackers do not send one.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Now().UTC(), nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n > 1e12 { // milliseconds
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %s", ErrInvalidCoordinateFormat, raw)
}
