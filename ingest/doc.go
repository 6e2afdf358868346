// Package ingest feeds the fleet store from external position sources.
//
// It contains:
//   - A tolerant parser for the position payload shapes produced by
//     tracking clients (GeoJSON-style arrays and two object spellings)
//   - A NATS subscriber for JSON position messages
//   - A GTFS-Realtime VehiclePositions poller
//
// Malformed payloads are logged and dropped; a bad message never fails
// the ingestion stream.
package ingest
