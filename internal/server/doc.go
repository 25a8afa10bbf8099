// Package server wraps net/http server lifecycle management: listener
// binding, non-blocking start, graceful shutdown, and OS signal handling.
package server
