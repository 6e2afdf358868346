package gpstracker

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/santanu-atta03/gps-tracker/geo"
)

var validate = validator.New()

// pointQuery carries a validated point search request.
type pointQuery struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lng    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gt=0"`
}

// routeQuery carries a validated route search request.
type routeQuery struct {
	FromLat float64 `validate:"gte=-90,lte=90"`
	FromLng float64 `validate:"gte=-180,lte=180"`
	ToLat   float64 `validate:"gte=-90,lte=90"`
	ToLng   float64 `validate:"gte=-180,lte=180"`
	Radius  float64 `validate:"gt=0"`
}

var constraintText = map[string]string{
	"Lat":     "lat must be a number in [-90,90]",
	"Lng":     "lng must be a number in [-180,180]",
	"FromLat": "fromLat must be a number in [-90,90]",
	"FromLng": "fromLng must be a number in [-180,180]",
	"ToLat":   "toLat must be a number in [-90,90]",
	"ToLng":   "toLng must be a number in [-180,180]",
	"Radius":  "radius must be a number greater than 0",
}

// parsePointQuery validates a point search. Every violated constraint is
// reported, not just the first.
func parsePointQuery(q url.Values) (pointQuery, []string) {
	var pq pointQuery
	var violations []string

	pq.Lat = parseFloat(q.Get("lat"), "lat", &violations)
	pq.Lng = parseFloat(q.Get("lng"), "lng", &violations)
	pq.Radius = parseFloat(q.Get("radius"), "radius", &violations)
	if len(violations) > 0 {
		return pq, violations
	}
	return pq, structViolations(pq)
}

func parseRouteQuery(q url.Values) (routeQuery, []string) {
	var rq routeQuery
	var violations []string

	rq.FromLat = parseFloat(q.Get("fromLat"), "fromLat", &violations)
	rq.FromLng = parseFloat(q.Get("fromLng"), "fromLng", &violations)
	rq.ToLat = parseFloat(q.Get("toLat"), "toLat", &violations)
	rq.ToLng = parseFloat(q.Get("toLng"), "toLng", &violations)
	rq.Radius = parseFloat(q.Get("radius"), "radius", &violations)
	if len(violations) > 0 {
		return rq, violations
	}
	return rq, structViolations(rq)
}

func parseFloat(s, name string, violations *[]string) float64 {
	if s == "" {
		*violations = append(*violations, fmt.Sprintf("%s is required", name))
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*violations = append(*violations, fmt.Sprintf("%s must be numeric, got %q", name, s))
		return 0
	}
	return v
}

func structViolations(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var out []string
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			if msg, found := constraintText[fe.Field()]; found {
				out = append(out, msg)
			} else {
				out = append(out, fe.Error())
			}
		}
		return out
	}
	return []string{err.Error()}
}

func (q pointQuery) center() geo.Point { return geo.Point{Lat: q.Lat, Lng: q.Lng} }

func (q routeQuery) origin() geo.Point { return geo.Point{Lat: q.FromLat, Lng: q.FromLng} }
func (q routeQuery) dest() geo.Point   { return geo.Point{Lat: q.ToLat, Lng: q.ToLng} }
