// Package fleet owns the in-memory state of the live vehicle fleet.
//
// A Store accepts position updates from tracking clients and hands out
// immutable point-in-time snapshots to the search side. Trajectories are
// replaced wholesale on every accepted update, so a snapshot taken
// before an update never observes it.
package fleet
