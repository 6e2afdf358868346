// Package metrics exposes Prometheus instrumentation for ingestion and
// search.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with the service's metrics.
type Collector struct {
	reg *prometheus.Registry

	FleetVehicles prometheus.Gauge

	PointsIngested     prometheus.Counter
	PointsOutOfOrder   prometheus.Counter
	PayloadsRejected   *prometheus.CounterVec // source label: http|nats|gtfsrt
	SourceUp           *prometheus.GaugeVec   // source label
	Searches           *prometheus.CounterVec // kind label: point|route
	SearchDuration     prometheus.Histogram
	JourneysComposed   prometheus.Counter
	SearchesNoMatch    prometheus.Counter
}

// NewCollector builds and registers the metric set.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FleetVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_fleet_vehicles",
			Help: "Number of vehicles currently tracked.",
		}),
		PointsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_points_ingested_total",
			Help: "Total position points accepted into the fleet store.",
		}),
		PointsOutOfOrder: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_points_out_of_order_total",
			Help: "Total position points dropped for arriving out of timestamp order.",
		}),
		PayloadsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_payloads_rejected_total",
			Help: "Total position payloads dropped as malformed.",
		}, []string{"source"}),
		SourceUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracker_source_up",
			Help: "1 if an ingestion source connection is established.",
		}, []string{"source"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_searches_total",
			Help: "Total searches served.",
		}, []string{"kind"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_search_duration_seconds",
			Help:    "Duration of search requests.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		JourneysComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_journeys_composed_total",
			Help: "Total journey options returned across route searches.",
		}),
		SearchesNoMatch: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_searches_no_match_total",
			Help: "Total searches that found neither vehicles nor journeys.",
		}),
	}

	reg.MustRegister(
		c.FleetVehicles,
		c.PointsIngested, c.PointsOutOfOrder, c.PayloadsRejected, c.SourceUp,
		c.Searches, c.SearchDuration, c.JourneysComposed, c.SearchesNoMatch,
	)
	return c
}

// Handler serves the registry.
func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// fleet.StoreMetrics

func (c *Collector) PointIngested()          { c.PointsIngested.Inc() }
func (c *Collector) PointDroppedOutOfOrder() { c.PointsOutOfOrder.Inc() }
func (c *Collector) FleetSize(n int)         { c.FleetVehicles.Set(float64(n)) }

// ingest.SourceMetrics

func (c *Collector) PayloadRejected(source string) { c.PayloadsRejected.WithLabelValues(source).Inc() }
func (c *Collector) SourceConnected(source string, connected bool) {
	v := 0.0
	if connected {
		v = 1
	}
	c.SourceUp.WithLabelValues(source).Set(v)
}

// search instrumentation

func (c *Collector) SearchServed(kind string, d time.Duration) {
	c.Searches.WithLabelValues(kind).Inc()
	c.SearchDuration.Observe(d.Seconds())
}
