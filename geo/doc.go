// Package geo provides the coordinate model and great-circle math used by
// the fleet search engine.
//
// It contains:
//   - The canonical Point type and its range validation
//   - Haversine distance and initial bearing
//   - Nearest-vertex lookup against a polyline path
package geo
