// Package services provides the order domain service, which validates orders
// against restaurant snapshots and drives the Order aggregate through its
// transitions, producing the events the application layer publishes.
//
// The service performs no I/O; identifiers and time are injected.
package services
