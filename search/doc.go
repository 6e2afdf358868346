// Package search implements the matching and composition engine: radius
// lookup over a fleet snapshot, per-vehicle route alignment scoring,
// direct-match ranking, and bounded transfer-journey composition.
//
// Everything here operates on an immutable fleet.Snapshot and is safe to
// run concurrently with ingestion.
package search
