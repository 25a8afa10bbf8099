// Package handlers contains the HTTP handlers of the airline support demo:
// the chat turn endpoint, health/readiness probes, and the shared response
// helpers.
package handlers
