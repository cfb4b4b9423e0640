// Package renderjobs persists batch export runs in SQLite: one row per
// export with lifecycle status, frame progress, and the output location.
// The database lives next to the logs so job history survives restarts.
package renderjobs
