// Package telemetry initializes the OpenTelemetry SDK for traces and
// metrics over OTLP gRPC. Disabled telemetry leaves the global providers
// noop.
package telemetry
