// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Events emitted by the simulator and persisted by the writer
//   - Write errors and per-event write latency
//   - Completed periods and the active economic_conditions multiplier
package metrics
