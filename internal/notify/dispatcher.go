// AngelaMos | 2026
// dispatcher.go

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher delivers messages on background goroutines so request paths
// never wait on, or fail because of, outbound mail.
type Dispatcher struct {
	notifier Notifier
	logger   *slog.Logger
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(
	notifier Notifier,
	logger *slog.Logger,
	timeout time.Duration,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		notifier: notifier,
		logger:   logger,
		timeout:  timeout,
	}
}

// Dispatch queues msg for delivery. Failures are logged and dropped.
func (d *Dispatcher) Dispatch(msg Message) {
	if !msg.HasRecipients() {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("notification dropped after shutdown",
			"subject", msg.Subject,
		)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				d.logger.Error("notifier panicked", "panic", p)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Send(ctx, msg); err != nil {
			d.logger.Warn("notification delivery failed",
				"subject", msg.Subject,
				"error", err,
			)
		}
	}()
}

// Shutdown stops accepting messages and waits for in-flight deliveries or
// ctx expiry, whichever comes first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

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
