// Package delivery models the last leg of the saga: a driver is assigned when the
// kitchen reports an order ready, then a periodic sweep moves the record through
//
//	ASSIGNED --(targetInTransitTime)--> IN_TRANSIT --(targetDeliveredTime)--> DELIVERED
//
// Deadlines are absolute instants drawn when the previous state is entered. A record
// is safe for concurrent use: the sweep, the consumer and HTTP readers all share it.
package delivery
