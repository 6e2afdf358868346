package gpstracker

import "net/http"

type healthResponse struct {
	Status              string `json:"status"`
	TrackedVehicles     int    `json:"tracked_vehicles"`
	LatestPositionEpoch int64  `json:"latest_position_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		TrackedVehicles: s.store.Len(),
	}
	if latest := s.store.LatestTimestamp(); !latest.IsZero() {
		resp.LatestPositionEpoch = latest.Unix()
	}
	writeJSON(w, http.StatusOK, resp)
}
