// Package workflow implements typed stage graphs with guarded transitions.
//
// A Graph is parameterised by the facts its guards and resolver read. The
// production, shipment and repair packages each declare one graph; this
// package knows nothing about them. Terminal stages reject every transition
// with errs.ErrEntityIsClosed, and any-state terminals (cancellation) are
// reachable from every non-terminal stage without guard evaluation.
package workflow
