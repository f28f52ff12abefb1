package services

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// Window is an inclusive duration range a value is drawn from.
type Window struct {
	Min time.Duration
	Max time.Duration
}

func (w Window) validate(param string) error {
	if w.Min < 0 || w.Max < w.Min {
		return errs.NewValueIsOutOfRangeError(param, w.Max, w.Min, "∞")
	}
	return nil
}

// DispatchConfig holds the windows used when a driver is assigned.
type DispatchConfig struct {
	// ETA is added to the assignment time to give the customer-facing estimate.
	ETA Window
	// InTransit is the time between assignment and pickup.
	InTransit Window
	// Delivered is the time between pickup and hand-over.
	Delivered Window
}

// DefaultDispatchConfig returns ETA 20..40 min, pickup after 10..15 s and hand-over
// 15..25 s after pickup.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		ETA:       Window{Min: 20 * time.Minute, Max: 40 * time.Minute},
		InTransit: Window{Min: 10 * time.Second, Max: 15 * time.Second},
		Delivered: Window{Min: 15 * time.Second, Max: 25 * time.Second},
	}
}

func (c DispatchConfig) Validate() error {
	return errors.Join(
		c.ETA.validate("eta"),
		c.InTransit.validate("inTransit"),
		c.Delivered.validate("delivered"),
	)
}

// DriverDispatcher assigns drivers to ready orders.
//
// Business rules:
//   - the driver is picked uniformly from the roster
//   - the ETA and the in-transit deadline are drawn at assignment time
//   - the delivered deadline is drawn when the driver departs (see NextLeg)
//
// Example usage:
//
//	dispatcher, _ := services.NewDriverDispatcher(services.DefaultDispatchConfig(), delivery.Drivers, random)
//	d, err := dispatcher.Dispatch(ready.OrderID, ready.Address, now)
type DriverDispatcher struct {
	cfg     DispatchConfig
	drivers []string
	random  *kernel.Random
}

func NewDriverDispatcher(cfg DispatchConfig, drivers []string, random *kernel.Random) (*DriverDispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, errs.NewValueIsRequiredError("drivers")
	}
	if random == nil {
		return nil, errs.NewValueIsRequiredError("random")
	}
	roster := make([]string, len(drivers))
	copy(roster, drivers)
	return &DriverDispatcher{cfg: cfg, drivers: roster, random: random}, nil
}

// Dispatch creates the ASSIGNED record for an order that became ready at now.
func (d *DriverDispatcher) Dispatch(orderID, address string, now time.Time) (*delivery.Delivery, error) {
	driver := d.drivers[d.random.IntN(len(d.drivers))]
	eta := now.Add(d.random.Duration(d.cfg.ETA.Min, d.cfg.ETA.Max))
	pickup := now.Add(d.random.Duration(d.cfg.InTransit.Min, d.cfg.InTransit.Max))

	return delivery.NewDelivery(orderID, driver, address, now, eta, pickup)
}

// NextLeg draws the time from pickup to hand-over.
func (d *DriverDispatcher) NextLeg() time.Duration {
	return d.random.Duration(d.cfg.Delivered.Min, d.cfg.Delivered.Max)
}
