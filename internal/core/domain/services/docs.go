// Package services provides domain services that do not belong to a single
// aggregate root.
//
// The package includes:
//   - SerialAllocator: human-readable identifiers for sessions, transfers,
//     receptions, orders and post-slaughter tags
package services
