// Package order provides the Order aggregate of the restaurant and the value
// objects its lifecycle is built from.
//
// The package includes:
//   - Order: the aggregate root (customer, fulfilment details, lines, totals, payment state)
//   - Type and Lifecycle: one explicit status sequence per order type
//   - Status: the status labels shared by all lifecycles
//   - PaymentMethod and PaymentStatus
//   - TrackingToken: the public, non-sequential order handle
//   - Line and HistoryEntry
//
// Key business rules:
//   - total = subtotal + delivery fee, and the fee is non-zero only for delivery orders
//   - a line's unit price is frozen when the order is placed
//   - any requested status is accepted; reaching a fulfilment status settles payment
//   - payment settlement is an idempotent set to paid and never touches the status
package order
