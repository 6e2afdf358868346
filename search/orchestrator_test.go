package search

import (
	"context"
	"testing"

	"github.com/santanu-atta03/gps-tracker/fleet"
	"github.com/santanu-atta03/gps-tracker/geo"
)

func TestSearchRouteDirectCoverage(t *testing.T) {
	s := fleet.NewStore(50, 0, nil)
	seedTrajectory(t, s, "direct", corridorPath(), fleet.Metadata{})

	o := NewOrchestrator(DefaultParams())
	res := o.SearchRoute(context.Background(), s.Snapshot(), esplanade, saltLake, 10000)

	if len(res.DirectMatches) == 0 {
		t.Fatal("expected a direct match")
	}
	if len(res.JourneyOptions) != 0 {
		t.Error("strong direct coverage should not trigger journey composition")
	}
	if len(res.Suggestions) != 0 {
		t.Error("no suggestions expected when matches exist")
	}
}

func TestSearchRouteWeakCoverageComposesJourneys(t *testing.T) {
	// Neither half-corridor vehicle serves the trip well on its own, but
	// together they connect it with one transfer.
	s := transferFleet(t)

	o := NewOrchestrator(DefaultParams())
	res := o.SearchRoute(context.Background(), s.Snapshot(), esplanade, saltLake, 1000)

	for _, m := range res.DirectMatches {
		if m.Route.Score >= DefaultParams().GoodEnoughScore {
			t.Fatalf("test premise broken: %s scores %g", m.VehicleID, m.Route.Score)
		}
	}
	if len(res.JourneyOptions) == 0 {
		t.Fatal("weak direct coverage should produce journey options")
	}
	if res.JourneyOptions[0].TransferCount != 1 {
		t.Errorf("expected a one-transfer journey, got %d", res.JourneyOptions[0].TransferCount)
	}
}

func TestSearchRouteNothingFoundYieldsSuggestions(t *testing.T) {
	s := fleet.NewStore(50, 0, nil)
	seedTrajectory(t, s, "faraway", []geo.Point{
		{Lat: 28.61, Lng: 77.20},
		{Lat: 28.62, Lng: 77.21},
	}, fleet.Metadata{})

	o := NewOrchestrator(DefaultParams())
	res := o.SearchRoute(context.Background(), s.Snapshot(), esplanade, saltLake, 1000)

	if len(res.DirectMatches) != 0 || len(res.JourneyOptions) != 0 {
		t.Fatal("expected nothing to be found")
	}
	if len(res.Suggestions) == 0 {
		t.Error("suggestions must be populated when nothing is found")
	}
}

func TestSearchRouteEmptyFleetSuggestions(t *testing.T) {
	s := fleet.NewStore(10, 0, nil)
	o := NewOrchestrator(DefaultParams())
	res := o.SearchRoute(context.Background(), s.Snapshot(), esplanade, saltLake, 1000)

	if len(res.Suggestions) == 0 {
		t.Error("empty fleet should still yield suggestions")
	}
}

func TestSearchPointDelegatesToIndex(t *testing.T) {
	s := fleet.NewStore(10, 0, nil)
	seedTrajectory(t, s, "near", []geo.Point{{Lat: 22.5730, Lng: 88.3645}}, fleet.Metadata{})

	o := NewOrchestrator(DefaultParams())
	got := o.SearchPoint(s.Snapshot(), geo.Point{Lat: 22.5726, Lng: 88.3639}, 1000)
	if len(got) != 1 || got[0].VehicleID != "near" {
		t.Errorf("unexpected point search result: %+v", got)
	}
}
