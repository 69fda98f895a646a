package notify

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/metrics"
)

const channelNone = "none"

// Dispatcher runs notifications in the background, detached from the request that triggered them
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A nil notifier turns Dispatch into a no-op.
func NewDispatcher(notifier Notifier, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{notifier: notifier, timeout: timeout, logger: logger}
}

// Dispatch builds and sends the alert for orderID on its own goroutine, under the
// dispatcher's timeout. Failures are logged and counted, never returned.
func (d *Dispatcher) Dispatch(orderID int64, build PayloadFunc) {
	if d.notifier == nil {
		d.logger.Debug("Notifications disabled, skipping", zap.Int64("order_id", orderID))
		metrics.Notifications.WithLabelValues(channelNone, metrics.OutcomeSkipped).Inc()
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(orderID, build)
	}()
}

func (d *Dispatcher) run(orderID int64, build PayloadFunc) {
	channel := d.notifier.Channel()
	logger := d.logger.With(
		zap.String("notification_id", uuid.NewString()),
		zap.Int64("order_id", orderID),
		zap.String("channel", channel),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Notification panicked", zap.Any("panic", r))
			metrics.Notifications.WithLabelValues(channel, metrics.OutcomeFailed).Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	err := d.notifier.Notify(ctx, build(ctx))
	switch {
	case err == nil:
		logger.Info("Order notification sent", zap.Duration("elapsed", time.Since(start)))
		metrics.Notifications.WithLabelValues(channel, metrics.OutcomeSent).Inc()
	case stderrors.Is(err, ErrDeliveredByFallback):
		logger.Info("Order notification sent by fallback", zap.Duration("elapsed", time.Since(start)))
		metrics.Notifications.WithLabelValues(channel, metrics.OutcomeFallback).Inc()
	default:
		logger.Error("Failed to send order notification", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		metrics.Notifications.WithLabelValues(channel, metrics.OutcomeFailed).Inc()
	}
}

// Wait blocks until in-flight notifications finish or ctx is done
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
