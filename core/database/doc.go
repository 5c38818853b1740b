// Package database manages the optional MySQL connection used for the
// operation audit trail.
//
// The connection is built with GORM over the mysql driver, with DSN-level
// timeouts and a bounded connection pool. Callers treat a failed connection
// as a soft error: the service runs without auditing when no database is
// reachable.
package database
