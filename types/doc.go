// Package types defines the shared data model of the airline support demo:
// the conversation Context value, turn messages and orchestration events,
// guardrail check records, and the structured error taxonomy.
package types
