package gpstracker

import (
	"encoding/json"
	"net/http"

	"github.com/santanu-atta03/gps-tracker/geo"
	"github.com/santanu-atta03/gps-tracker/search"
)

type busResult struct {
	DeviceID           string    `json:"deviceID"`
	Location           geo.Point `json:"location"`
	DistanceFromSearch float64   `json:"distanceFromSearch"`
	Route              string    `json:"route,omitempty"`
	Driver             string    `json:"driver,omitempty"`
	Status             string    `json:"status,omitempty"`
}

type pointMetadata struct {
	SearchLocation geo.Point `json:"searchLocation"`
	Radius         float64   `json:"radius"`
	TotalFound     int       `json:"totalFound"`
}

type pointResponse struct {
	Success  bool          `json:"success"`
	Buses    []busResult   `json:"buses"`
	Metadata pointMetadata `json:"metadata"`
}

type routeBusResult struct {
	DeviceID          string            `json:"deviceID"`
	Location          geo.Point         `json:"location"`
	Route             string            `json:"route,omitempty"`
	Driver            string            `json:"driver,omitempty"`
	Status            string            `json:"status,omitempty"`
	RouteAnalysis     search.RouteMatch `json:"routeAnalysis"`
	DistanceFromStart float64           `json:"distanceFromStart"`
	DistanceFromEnd   float64           `json:"distanceFromEnd"`
}

type routeMetadata struct {
	FromLocation    geo.Point `json:"fromLocation"`
	ToLocation      geo.Point `json:"toLocation"`
	Radius          float64   `json:"radius"`
	RouteBusesCount int       `json:"routeBusesCount"`
}

type routeResponse struct {
	Success     bool                   `json:"success"`
	Buses       []routeBusResult       `json:"buses"`
	Journeys    []search.JourneyOption `json:"journeys,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
	Metadata    routeMetadata          `json:"metadata"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

type ingestResponse struct {
	Success  bool   `json:"success"`
	Accepted bool   `json:"accepted"`
	DeviceID string `json:"deviceID,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeValidationErrors(w http.ResponseWriter, violations []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Errors: violations})
}
