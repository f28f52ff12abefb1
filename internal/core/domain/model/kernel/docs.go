// Package kernel provides the primitives shared by every domain package:
//   - UUID: identifier value object used for order and transaction ids
//   - Clock: injectable source of the current instant
//   - Random: seedable, goroutine-safe randomness for the simulated timings
package kernel
