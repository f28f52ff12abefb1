package jobs

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the delivery sweep every five seconds.
const DefaultSweepSchedule = "@every 5s"

// DeliverySweeper advances due deliveries. AdvanceDeliveriesCommandHandler implements it.
type DeliverySweeper interface {
	Handle(ctx context.Context, cmd commands.AdvanceDeliveriesCommand) (int, error)
}

// DeliverySweepJob runs the delivery sweep on a cron schedule.
// A failed or panicking pass is logged and the next pass runs as scheduled.
type DeliverySweepJob struct {
	sweeper  DeliverySweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDeliverySweepJob creates the sweep job. An empty schedule means DefaultSweepSchedule.
func NewDeliverySweepJob(sweeper DeliverySweeper, schedule string, logger *slog.Logger) *DeliverySweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	logger = logger.With("component", "delivery_sweep_job")
	ctx, cancel := context.WithCancel(context.Background())

	return &DeliverySweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the sweep.
func (j *DeliverySweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		cmd := commands.NewAdvanceDeliveriesCommand()

		moved, err := j.sweeper.Handle(j.ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(j.ctx, "Delivery sweep failed", "error", err)
			return
		}
		if moved > 0 {
			j.logger.DebugContext(j.ctx, "Delivery sweep finished", "moved", moved)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery sweep job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the sweep and waits for a running pass to return.
func (j *DeliverySweepJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery sweep job stopped")
}

// cronLogger routes cron's own messages (recovered panics, skipped runs) to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
