// Package shipment models shipment batches and their stage graph.
package shipment
