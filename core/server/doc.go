// Package server holds the HTTP server configuration.
//
// It is intentionally small: the Fiber application itself is wired in the
// start command, this package only carries the settings that shape it
// (listen port, API key, read-only mode).
package server
