// Package event holds the append-only event record shared by every entity
// kind, and the helpers that derive control state from an event history.
package event
