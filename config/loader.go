package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the application configuration. A missing file
// yields defaults; environment variables (optionally from a local .env)
// override the file for deployment settings.
func Load(path string) (AppConfig, error) {
	_ = godotenv.Load()

	cfg := defaults()

	paths := []string{path, "config.yml"}
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, err
		}
		break
	}

	applyEnv(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func defaults() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 16182},
		Fleet: FleetConfig{
			RetentionPoints: 120,
			MaxPointAgeMin:  15,
		},
		Search: SearchConfig{
			DirectionToleranceDeg: 90,
			GoodEnoughScore:       0.5,
			MaxTransfers:          2,
			WalkThresholdM:        500,
			TransferRadiusM:       300,
			WalkSpeedMPM:          80,
			BusSpeedMPM:           500,
			TransferWaitMinutes:   5,
			TopKJourneys:          5,
			NodeBudget:            10000,
		},
		Ingest: IngestConfig{
			NATS:   NATSConfig{Subject: "fleet.positions.>"},
			GTFSRT: GTFSRTConfig{PollIntervalMS: 15000},
		},
	}
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Ingest.NATS.URL = v
	}
	if v := os.Getenv("NATS_SUBJECT"); v != "" {
		cfg.Ingest.NATS.Subject = v
	}
	if v := os.Getenv("GTFSRT_VEHICLE_POSITIONS_URL"); v != "" {
		cfg.Ingest.GTFSRT.VehiclePositionsURL = v
	}
}
