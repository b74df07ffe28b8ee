// Package services provides domain services that apply business rules which
// do not belong to a single aggregate.
//
// The package includes:
//   - OrderStatusMachine: classifies a requested status change against the order
//     type's lifecycle and decides whether and how the customer is told
//   - TrackingTokenGenerator: draws public order handles from the unambiguous alphabet
package services
