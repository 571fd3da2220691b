// Package order contains the Order aggregate and its fulfillment state
// machine, plus the order-scoped records the rest of the system operates on:
// postal addresses, shipping label and tracking artifacts, and the
// append-only status/error audit rows.
//
// The aggregate is mutated exclusively by the flow orchestrator (status,
// tracking fields, retry counters) and the batch manager (batch id,
// completion timestamp). All transitions go through the Status state
// machine; invalid transitions are rejected with a validation error.
package order
