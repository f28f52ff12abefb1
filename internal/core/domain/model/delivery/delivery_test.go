package delivery_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)

func newAssigned(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		"X", "Anna Schmidt", "Main Street 10",
		assignedAt, assignedAt.Add(30*time.Minute), assignedAt.Add(12*time.Second),
	)
	require.NoError(t, err)
	return d
}

func leg(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

func TestNewDelivery(t *testing.T) {
	t.Run("starts assigned with in-transit deadline pending", func(t *testing.T) {
		d := newAssigned(t)

		require.NoError(t, d.Validate())
		snap := d.Snapshot()
		assert.Equal(t, "X", snap.OrderID)
		assert.Equal(t, delivery.Assigned, snap.Status)
		assert.Equal(t, "Anna Schmidt", snap.DriverName)
		assert.Equal(t, "Main Street 10", snap.Address)
		assert.Equal(t, assignedAt, snap.AssignedAt)
		assert.Equal(t, assignedAt.Add(30*time.Minute), snap.EstimatedDeliveryTime)
		require.NotNil(t, snap.TargetInTransitTime)
		assert.Equal(t, assignedAt.Add(12*time.Second), *snap.TargetInTransitTime)
		assert.Nil(t, snap.InTransitAt)
		assert.Nil(t, snap.DeliveredAt)
		assert.Nil(t, snap.TargetDeliveredTime)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := delivery.NewDelivery(" ", "", "", assignedAt, assignedAt, assignedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "driverName")
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("rejects deadline before assignment", func(t *testing.T) {
		_, err := delivery.NewDelivery("X", "D", "A", assignedAt, assignedAt, assignedAt.Add(-time.Second))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var d *delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
		require.ErrorIs(t, (&delivery.Delivery{}).Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_Advance(t *testing.T) {
	t.Run("nothing happens before the deadline", func(t *testing.T) {
		d := newAssigned(t)

		status, changed := d.Advance(assignedAt.Add(11*time.Second), leg(20*time.Second))

		assert.False(t, changed)
		assert.Equal(t, delivery.Assigned, status)
		assert.Nil(t, d.Snapshot().InTransitAt)
	})

	t.Run("departs at the deadline and schedules the next leg", func(t *testing.T) {
		d := newAssigned(t)
		now := assignedAt.Add(12 * time.Second)

		status, changed := d.Advance(now, leg(20*time.Second))

		assert.True(t, changed)
		assert.Equal(t, delivery.InTransit, status)
		snap := d.Snapshot()
		require.NotNil(t, snap.InTransitAt)
		assert.Equal(t, now, *snap.InTransitAt)
		assert.Nil(t, snap.TargetInTransitTime)
		require.NotNil(t, snap.TargetDeliveredTime)
		assert.Equal(t, now.Add(20*time.Second), *snap.TargetDeliveredTime)
		assert.Nil(t, snap.DeliveredAt)
	})

	t.Run("draws the next leg only on departure", func(t *testing.T) {
		d := newAssigned(t)
		draws := 0
		next := func() time.Duration {
			draws++
			return 20 * time.Second
		}

		// Given sweeps before the deadline
		d.Advance(assignedAt, next)
		d.Advance(assignedAt.Add(11*time.Second), next)
		assert.Zero(t, draws)

		// When the record departs and later sweeps find nothing due
		departed := assignedAt.Add(12 * time.Second)
		d.Advance(departed, next)
		d.Advance(departed.Add(time.Second), next)
		d.Advance(departed.Add(20*time.Second), next)
		d.Advance(departed.Add(time.Hour), next)

		// Then exactly one draw happened
		assert.Equal(t, 1, draws)
		assert.Equal(t, delivery.Delivered, d.Status())
	})

	t.Run("nil next leg schedules delivery at departure", func(t *testing.T) {
		d := newAssigned(t)
		now := assignedAt.Add(12 * time.Second)

		d.Advance(now, nil)

		snap := d.Snapshot()
		require.NotNil(t, snap.TargetDeliveredTime)
		assert.Equal(t, now, *snap.TargetDeliveredTime)
	})

	t.Run("moves at most one step per call", func(t *testing.T) {
		d := newAssigned(t)
		late := assignedAt.Add(time.Hour)

		status, _ := d.Advance(late, leg(0))
		assert.Equal(t, delivery.InTransit, status)

		status, changed := d.Advance(late, leg(0))
		assert.True(t, changed)
		assert.Equal(t, delivery.Delivered, status)
	})

	t.Run("delivers at the second deadline and clears it", func(t *testing.T) {
		d := newAssigned(t)
		departed := assignedAt.Add(12 * time.Second)
		d.Advance(departed, leg(15*time.Second))

		status, changed := d.Advance(departed.Add(14*time.Second), leg(time.Second))
		assert.False(t, changed)
		assert.Equal(t, delivery.InTransit, status)

		deliveredAt := departed.Add(15 * time.Second)
		status, changed = d.Advance(deliveredAt, leg(time.Second))

		assert.True(t, changed)
		assert.Equal(t, delivery.Delivered, status)
		snap := d.Snapshot()
		require.NotNil(t, snap.DeliveredAt)
		assert.Equal(t, deliveredAt, *snap.DeliveredAt)
		require.NotNil(t, snap.InTransitAt)
		assert.Equal(t, departed, *snap.InTransitAt)
		assert.Nil(t, snap.TargetDeliveredTime)
		assert.Nil(t, snap.TargetInTransitTime)
		assert.False(t, snap.InTransitAt.After(*snap.DeliveredAt))
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		d := newAssigned(t)
		late := assignedAt.Add(time.Hour)
		d.Advance(late, leg(0))
		d.Advance(late, leg(0))
		before := d.Snapshot()

		status, changed := d.Advance(late.Add(time.Hour), leg(0))

		assert.False(t, changed)
		assert.Equal(t, delivery.Delivered, status)
		assert.Equal(t, before, d.Snapshot())
	})
}

func TestDelivery_Reschedule(t *testing.T) {
	t.Run("forces a pending deadline into the past", func(t *testing.T) {
		d := newAssigned(t)
		require.NoError(t, d.RescheduleInTransit(assignedAt))

		status, changed := d.Advance(assignedAt, leg(time.Minute))

		assert.True(t, changed)
		assert.Equal(t, delivery.InTransit, status)

		require.NoError(t, d.RescheduleDelivered(assignedAt))
		status, changed = d.Advance(assignedAt, leg(time.Minute))

		assert.True(t, changed)
		assert.Equal(t, delivery.Delivered, status)
	})

	t.Run("rejects deadlines that are not pending", func(t *testing.T) {
		d := newAssigned(t)

		require.ErrorIs(t, d.RescheduleDelivered(assignedAt), errs.ErrValueIsInvalid)

		d.Advance(assignedAt.Add(time.Hour), leg(0))
		require.ErrorIs(t, d.RescheduleInTransit(assignedAt), errs.ErrValueIsInvalid)
	})
}

func TestDelivery_SnapshotIsDetached(t *testing.T) {
	d := newAssigned(t)
	snap := d.Snapshot()

	*snap.TargetInTransitTime = assignedAt.Add(time.Hour)

	assert.Equal(t, assignedAt.Add(12*time.Second), *d.Snapshot().TargetInTransitTime)
}

func TestDelivery_SnapshotJSON(t *testing.T) {
	d := newAssigned(t)

	body, err := json.Marshal(d.Snapshot())

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"orderId": "X",
		"status": "ASSIGNED",
		"driverName": "Anna Schmidt",
		"address": "Main Street 10",
		"assignedAt": "2026-01-16T10:00:00Z",
		"estimatedDeliveryTime": "2026-01-16T10:30:00Z",
		"inTransitAt": null,
		"deliveredAt": null,
		"targetInTransitTime": "2026-01-16T10:00:12Z",
		"targetDeliveredTime": null
	}`, string(body))
}

func TestDelivery_ConcurrentReadersSeeConsistentRecords(t *testing.T) {
	// Given a record advanced by one goroutine while others read it
	d := newAssigned(t)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := d.Snapshot()
				// Then no reader ever observes a status without its timestamp
				switch snap.Status {
				case delivery.InTransit:
					assert.NotNil(t, snap.InTransitAt)
					assert.Nil(t, snap.DeliveredAt)
				case delivery.Delivered:
					assert.NotNil(t, snap.InTransitAt)
					assert.NotNil(t, snap.DeliveredAt)
				case delivery.Assigned:
					assert.Nil(t, snap.InTransitAt)
				}
			}
		}()
	}

	// When the sweep walks it to the end
	late := assignedAt.Add(time.Hour)
	for range 100 {
		d.Advance(late, leg(0))
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, delivery.Delivered, d.Status())
}
