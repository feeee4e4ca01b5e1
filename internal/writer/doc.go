// Package writer implements the event sinks for simulated home sales.
//
// Sinks:
//   - EventWriter: one INSERT and COMMIT per event into the append-only
//     event table (PostgreSQL, JSONB payload)
//   - Discard: drops events, used for dry runs
//
// Writes are never batched or retried. A failed write is returned to the
// caller and ends the run.
package writer
