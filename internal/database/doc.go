// Package database provides the PostgreSQL connection for the event store.
//
// The simulator holds a single long-lived connection for the whole run. It
// is only ever used from one goroutine, so the pool is capped at one
// connection.
package database
