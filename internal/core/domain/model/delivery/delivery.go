package delivery

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not created through NewDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Drivers is the fixed roster a delivery driver is picked from.
var Drivers = []string{
	"Max Mustermann",
	"Anna Schmidt",
	"Peter Mueller",
	"Lisa Weber",
	"Tom Fischer",
}

// Delivery tracks one order from driver assignment to hand-over.
//
// The record is shared between the delivery consumer that creates it, the sweep that
// advances it and the query handlers that read it. All of them may run at the same
// time, so every field is read and written under mu. A transition changes several
// fields at once and always happens inside a single write-lock section; readers take a
// Snapshot and never see the status without its matching timestamp.
//
// Delivery follows these invariants:
//   - Status only moves forward: ASSIGNED -> IN_TRANSIT -> DELIVERED
//   - inTransitAt is set exactly when status is IN_TRANSIT or DELIVERED
//   - deliveredAt is set exactly when status is DELIVERED
//   - at most one pending deadline exists: targetInTransit while ASSIGNED,
//     targetDelivered while IN_TRANSIT, none once DELIVERED
type Delivery struct {
	mu sync.RWMutex

	orderID    string
	status     Status
	driverName string
	address    string

	assignedAt            time.Time
	estimatedDeliveryTime time.Time
	inTransitAt           *time.Time
	deliveredAt           *time.Time

	targetInTransitTime *time.Time
	targetDeliveredTime *time.Time

	guard guard.ConstructorGuard
}

// NewDelivery creates an ASSIGNED record with its in-transit deadline scheduled.
//
// Example:
//
//	d, err := delivery.NewDelivery("X", "Anna Schmidt", "Main Street 10",
//	    now, now.Add(30*time.Minute), now.Add(12*time.Second))
func NewDelivery(
	orderID string,
	driverName string,
	address string,
	assignedAt time.Time,
	estimatedDeliveryTime time.Time,
	targetInTransitTime time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		validateRequired("orderId", orderID),
		validateRequired("driverName", driverName),
		validateRequired("address", address),
		validateNotBefore("targetInTransitTime", targetInTransitTime, assignedAt),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		orderID:               orderID,
		status:                Assigned,
		driverName:            driverName,
		address:               address,
		assignedAt:            assignedAt,
		estimatedDeliveryTime: estimatedDeliveryTime,
		targetInTransitTime:   &targetInTransitTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Delivery was built by NewDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// OrderID returns the order the record tracks. It never changes after construction.
func (d *Delivery) OrderID() string {
	return d.orderID
}

// Status returns the current status.
func (d *Delivery) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Advance applies at most one due transition at now.
//
//   - ASSIGNED and now >= targetInTransitTime: IN_TRANSIT, inTransitAt = now and the
//     delivered deadline is scheduled nextLeg() after now. nextLeg is only called
//     on departure; a nil nextLeg schedules the deadline at now.
//   - IN_TRANSIT and now >= targetDeliveredTime: DELIVERED, deliveredAt = now.
//   - Anything else is left untouched.
//
// It returns the resulting status and whether a transition happened. A record is
// advanced at most one step per call, so a sweep that runs late still passes through
// IN_TRANSIT before DELIVERED.
func (d *Delivery) Advance(now time.Time, nextLeg func() time.Duration) (Status, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.status {
	case Assigned:
		if !isDue(d.targetInTransitTime, now) {
			return d.status, false
		}
		next, err := d.status.Depart()
		if err != nil {
			return d.status, false
		}
		departedAt := now
		deliverBy := now
		if nextLeg != nil {
			deliverBy = now.Add(nextLeg())
		}
		d.status = next
		d.inTransitAt = &departedAt
		d.targetInTransitTime = nil
		d.targetDeliveredTime = &deliverBy
		return d.status, true

	case InTransit:
		if !isDue(d.targetDeliveredTime, now) {
			return d.status, false
		}
		next, err := d.status.Complete()
		if err != nil {
			return d.status, false
		}
		deliveredAt := now
		d.status = next
		d.deliveredAt = &deliveredAt
		d.targetDeliveredTime = nil
		return d.status, true

	default:
		return d.status, false
	}
}

// RescheduleInTransit moves the pending in-transit deadline. It fails unless the
// record is still ASSIGNED.
func (d *Delivery) RescheduleInTransit(at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s has no pending in-transit deadline", d.status),
		)
	}
	d.targetInTransitTime = &at
	return nil
}

// RescheduleDelivered moves the pending delivered deadline. It fails unless the
// record is IN_TRANSIT.
func (d *Delivery) RescheduleDelivered(at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != InTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s has no pending delivered deadline", d.status),
		)
	}
	d.targetDeliveredTime = &at
	return nil
}

// Snapshot copies the record under the read lock.
func (d *Delivery) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return Snapshot{
		OrderID:               d.orderID,
		Status:                d.status,
		DriverName:            d.driverName,
		Address:               d.address,
		AssignedAt:            d.assignedAt,
		EstimatedDeliveryTime: d.estimatedDeliveryTime,
		InTransitAt:           copyTime(d.inTransitAt),
		DeliveredAt:           copyTime(d.deliveredAt),
		TargetInTransitTime:   copyTime(d.targetInTransitTime),
		TargetDeliveredTime:   copyTime(d.targetDeliveredTime),
	}
}

// Snapshot is a point-in-time, read-only copy of a Delivery. Its JSON form is the body
// of the delivery status endpoints; unset instants render as null.
type Snapshot struct {
	OrderID               string     `json:"orderId"`
	Status                Status     `json:"status"`
	DriverName            string     `json:"driverName"`
	Address               string     `json:"address"`
	AssignedAt            time.Time  `json:"assignedAt"`
	EstimatedDeliveryTime time.Time  `json:"estimatedDeliveryTime"`
	InTransitAt           *time.Time `json:"inTransitAt"`
	DeliveredAt           *time.Time `json:"deliveredAt"`
	TargetInTransitTime   *time.Time `json:"targetInTransitTime"`
	TargetDeliveredTime   *time.Time `json:"targetDeliveredTime"`
}

func isDue(deadline *time.Time, now time.Time) bool {
	return deadline != nil && !now.Before(*deadline)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func validateRequired(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func validateNotBefore(param string, value, reference time.Time) error {
	if value.Before(reference) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is before %s", value, reference))
	}
	return nil
}
