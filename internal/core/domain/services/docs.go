// Package services provides the domain services of the saga: the randomized policies
// that are not tied to a single record.
//
// The package includes:
//   - PaymentSimulator: approves or declines a charge after a simulated processing delay
//   - DriverDispatcher: picks a driver and draws the delivery deadlines and ETA
//   - KitchenTimer: draws how long a pizza takes to prepare
//
// Every service draws from an injected kernel.Random, so a seeded run is reproducible.
package services
