// Package metrics computes small local counters attached to telemetry events.
package metrics
