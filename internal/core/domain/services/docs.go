// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - BusinessHoursAccountant: active time inside daily work windows, and per-stage
//     durations derived from control events
//   - ConsumptionContextResolver: chooses the consumption context of a scanned item
//     among a final unit and its bound sub-assemblies
package services
