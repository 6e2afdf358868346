// Package gpstracker serves the live fleet search API: point and route
// vehicle searches over an in-memory fleet snapshot, transfer-journey
// composition when no single vehicle serves a trip, and an HTTP position
// ingestion endpoint for tracking clients.
package gpstracker
