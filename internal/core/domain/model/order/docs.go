// Package order models the order gate's side of the saga.
//
// The package includes:
//   - Order: the validated, identified customer order and its charge amount
//   - Outcome: the result reported to the caller (SUCCESS, PAYMENT_FAILED, ERROR,
//     VALIDATION_ERROR)
//
// Pricing is fixed: every pizza costs UnitPrice, so Amount = quantity × 15.99.
package order
