package services

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/payment"
	"pizzeria/internal/pkg/errs"
)

const (
	DefaultFailureRate     = 0.2
	DefaultPaymentDelayMin = 100 * time.Millisecond
	DefaultPaymentDelayMax = 500 * time.Millisecond
)

// PaymentConfig tunes the simulated gateway.
type PaymentConfig struct {
	// FailureRate is the probability in [0, 1] that a valid charge is declined.
	FailureRate float64
	// MinDelay and MaxDelay bound the simulated processing time.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultPaymentConfig returns a 20% decline rate with 100..500ms processing time.
func DefaultPaymentConfig() PaymentConfig {
	return PaymentConfig{
		FailureRate: DefaultFailureRate,
		MinDelay:    DefaultPaymentDelayMin,
		MaxDelay:    DefaultPaymentDelayMax,
	}
}

// Validate checks the config ranges.
func (c PaymentConfig) Validate() error {
	var errList []error
	if !(c.FailureRate >= 0 && c.FailureRate <= 1) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("failureRate", c.FailureRate, 0, 1))
	}
	if c.MinDelay < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("minDelay", c.MinDelay, 0, c.MaxDelay))
	}
	if c.MaxDelay < c.MinDelay {
		errList = append(errList, errs.NewValueIsOutOfRangeError("maxDelay", c.MaxDelay, c.MinDelay, "∞"))
	}
	return errors.Join(errList...)
}

// PaymentSimulator stands in for a real payment provider. It is stateless apart from
// its random source and may serve any number of concurrent charges.
//
// Business rules:
//   - every charge waits a random processing delay in [MinDelay, MaxDelay]
//   - a valid charge is declined with probability FailureRate
//   - an approved charge gets a fresh transaction id
//
// Example usage:
//
//	sim, _ := services.NewPaymentSimulator(services.DefaultPaymentConfig(), kernel.NewRandom(0))
//	result, err := sim.Charge(ctx, req)
//	if err != nil {
//	    // ctx was cancelled while processing
//	}
type PaymentSimulator struct {
	cfg    PaymentConfig
	random *kernel.Random
}

func NewPaymentSimulator(cfg PaymentConfig, random *kernel.Random) (*PaymentSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if random == nil {
		return nil, errs.NewValueIsRequiredError("random")
	}
	return &PaymentSimulator{cfg: cfg, random: random}, nil
}

// Charge processes one charge. Declines are results, not errors; the only error is a
// cancelled context.
func (s *PaymentSimulator) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	if err := req.Validate(); err != nil {
		return payment.ChargeResult{}, err
	}

	if err := Sleep(ctx, s.random.Duration(s.cfg.MinDelay, s.cfg.MaxDelay)); err != nil {
		return payment.ChargeResult{}, err
	}

	if s.random.Float64() < s.cfg.FailureRate {
		return payment.Declined(), nil
	}
	return payment.Approved(kernel.NewUUID().String()), nil
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
