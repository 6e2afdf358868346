package config

// ServerConfig contains the HTTP listener configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// FleetConfig bounds the in-memory trajectory store.
type FleetConfig struct {
	RetentionPoints int `yaml:"retentionPoints" validate:"gt=0"`
	MaxPointAgeMin  int `yaml:"maxPointAgeMin" validate:"gte=0"`
}

// SearchConfig exposes the engine tunables. Zero values fall back to the
// engine defaults.
type SearchConfig struct {
	ProximityThresholdM   float64 `yaml:"proximityThresholdM" validate:"gte=0"`
	DirectionToleranceDeg float64 `yaml:"directionToleranceDeg" validate:"gte=0,lte=180"`
	GoodEnoughScore       float64 `yaml:"goodEnoughScore" validate:"gte=0,lte=1"`
	MaxTransfers          int     `yaml:"maxTransfers" validate:"gte=0"`
	WalkThresholdM        float64 `yaml:"walkThresholdM" validate:"gte=0"`
	TransferRadiusM       float64 `yaml:"transferRadiusM" validate:"gte=0"`
	WalkSpeedMPM          float64 `yaml:"walkSpeedMPM" validate:"gte=0"`
	BusSpeedMPM           float64 `yaml:"busSpeedMPM" validate:"gte=0"`
	TransferWaitMinutes   float64 `yaml:"transferWaitMinutes" validate:"gte=0"`
	TopKJourneys          int     `yaml:"topKJourneys" validate:"gte=0"`
	NodeBudget            int     `yaml:"nodeBudget" validate:"gte=0"`
}

// NATSConfig configures the optional NATS position subscriber.
type NATSConfig struct {
	URL     string `yaml:"url" validate:"omitempty,uri"`
	Subject string `yaml:"subject"`
}

// GTFSRTConfig configures the optional GTFS-Realtime VehiclePositions
// poller.
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	PollIntervalMS      int    `yaml:"pollIntervalMS" validate:"gte=0"`
}

// IngestConfig groups the position ingestion sources. Both are optional;
// the HTTP ingestion endpoint is always available.
type IngestConfig struct {
	NATS   NATSConfig   `yaml:"nats"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Fleet  FleetConfig  `yaml:"fleet"`
	Search SearchConfig `yaml:"search"`
	Ingest IngestConfig `yaml:"ingest"`
}
