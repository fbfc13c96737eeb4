// Package consumption tracks physical parts consumed into final units,
// sub-assemblies and repair tickets, and the binding of labelled
// sub-assemblies to final units.
//
// A label scan is parsed into an item code and a scan identity. The item code
// is checked against a bill of materials; the scan identity keeps one physical
// piece from being consumed twice while its record is active.
package consumption
