// Package db owns the MySQL connection lifecycle.
//
// The Client is the connection manager: it lazily opens a single managed
// handle, retries transient connectivity failures with exponential backoff,
// answers liveness probes, and guarantees release through Close or the
// scoped With helper. DSN construction is centralized in BuildDSN so the
// rest of the application never assembles connection strings by hand.
//
// # Thread Safety
//
// Client is NOT safe for concurrent use. It assumes a single caller and
// owns at most one live handle at a time.
package db
