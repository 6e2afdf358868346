package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

// Poller periodically fetches a GTFS-Realtime VehiclePositions feed and
// ingests every reported position.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	store    *fleet.Store
	metrics  SourceMetrics
}

// NewPoller builds a Poller for a VehiclePositions URL.
func NewPoller(url string, interval time.Duration, store *fleet.Store, m SourceMetrics) *Poller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Poller{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		store:    store,
		metrics:  m,
	}
}

// Run polls until ctx is cancelled. Fetch or decode failures are logged
// and retried on the next tick.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx); err != nil {
			log.Printf("gtfsrt poll error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, p.url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(body, &fm); err != nil {
		return fmt.Errorf("decode feed: %w", err)
	}

	for _, e := range fm.Entity {
		v := e.GetVehicle()
		if v == nil || v.Position == nil {
			continue
		}
		id := v.GetVehicle().GetId()
		if id == "" {
			id = e.GetId()
		}
		if id == "" {
			continue
		}

		point, err := geo.NewPoint(float64(v.Position.GetLatitude()), float64(v.Position.GetLongitude()))
		if err != nil {
			if p.metrics != nil {
				p.metrics.PayloadRejected("gtfsrt")
			}
			log.Printf("gtfsrt position dropped for %s: %v", id, err)
			continue
		}

		ts := time.Now().UTC()
		if v.Timestamp != nil {
			ts = time.Unix(int64(v.GetTimestamp()), 0).UTC()
		}
		meta := fleet.Metadata{Route: v.GetTrip().GetRouteId()}
		p.store.Ingest(id, fleet.TimestampedPoint{Point: point, Timestamp: ts}, meta)
	}
	return nil
}
