package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	gpstracker "github.com/santanu-atta03/gps-tracker"
	"github.com/santanu-atta03/gps-tracker/config"
	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/ingest"
	"github.com/santanu-atta03/gps-tracker/metrics"
	"github.com/santanu-atta03/gps-tracker/search"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	gpstracker.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	collector := metrics.NewCollector()
	store := fleet.NewStore(cfg.Fleet.RetentionPoints, time.Duration(cfg.Fleet.MaxPointAgeMin)*time.Minute, collector)
	orch := search.NewOrchestrator(searchParams(cfg.Search))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if url := cfg.Ingest.NATS.URL; url != "" {
		sub, err := ingest.NewSubscriber(url, cfg.Ingest.NATS.Subject, store, collector)
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer sub.Close()
	}

	if url := cfg.Ingest.GTFSRT.VehiclePositionsURL; url != "" {
		poller := ingest.NewPoller(url, time.Duration(cfg.Ingest.GTFSRT.PollIntervalMS)*time.Millisecond, store, collector)
		go poller.Run(ctx)
		log.Printf("polling gtfs-rt vehicle positions from %s", url)
	}

	server := gpstracker.NewServer(cfg.Server.Port, store, orch, collector)
	server.Start()
	server.HandleGracefulShutdown()
}

func searchParams(sc config.SearchConfig) search.Params {
	p := search.DefaultParams()
	if sc.ProximityThresholdM > 0 {
		p.ProximityThresholdM = sc.ProximityThresholdM
	}
	if sc.DirectionToleranceDeg > 0 {
		p.DirectionToleranceDeg = sc.DirectionToleranceDeg
	}
	if sc.GoodEnoughScore > 0 {
		p.GoodEnoughScore = sc.GoodEnoughScore
	}
	if sc.MaxTransfers > 0 {
		p.MaxTransfers = sc.MaxTransfers
	}
	if sc.WalkThresholdM > 0 {
		p.WalkThresholdM = sc.WalkThresholdM
	}
	if sc.TransferRadiusM > 0 {
		p.TransferRadiusM = sc.TransferRadiusM
	}
	if sc.WalkSpeedMPM > 0 {
		p.WalkSpeedMPM = sc.WalkSpeedMPM
	}
	if sc.BusSpeedMPM > 0 {
		p.BusSpeedMPM = sc.BusSpeedMPM
	}
	if sc.TransferWaitMinutes > 0 {
		p.TransferWaitMinutes = sc.TransferWaitMinutes
	}
	if sc.TopKJourneys > 0 {
		p.TopKJourneys = sc.TopKJourneys
	}
	if sc.NodeBudget > 0 {
		p.NodeBudget = sc.NodeBudget
	}
	return p
}
