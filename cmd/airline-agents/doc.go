// Command airline-agents runs the simulated airline customer service
// multi-agent demo: an HTTP chat endpoint backed by a deterministic agent
// graph, plus health probes and a Prometheus metrics listener.
//
// Usage:
//
//	airline-agents serve                       # start the service
//	airline-agents serve --config config.yaml  # with a config file
//	airline-agents version                     # show version info
//	airline-agents health                      # probe a running instance
package main
