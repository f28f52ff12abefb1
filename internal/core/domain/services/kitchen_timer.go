package services

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// KitchenTimer draws preparation times. Defaults are 5..10 seconds.
type KitchenTimer struct {
	window Window
	random *kernel.Random
}

func DefaultPreparationWindow() Window {
	return Window{Min: 5 * time.Second, Max: 10 * time.Second}
}

func NewKitchenTimer(window Window, random *kernel.Random) (*KitchenTimer, error) {
	if err := window.validate("preparation"); err != nil {
		return nil, err
	}
	if random == nil {
		return nil, errs.NewValueIsRequiredError("random")
	}
	return &KitchenTimer{window: window, random: random}, nil
}

// PreparationTime returns a duration in the configured window.
func (k *KitchenTimer) PreparationTime() time.Duration {
	return k.random.Duration(k.window.Min, k.window.Max)
}
