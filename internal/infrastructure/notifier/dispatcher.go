package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout      = 5 * time.Second
	DefaultQueueSize    = 256
	DefaultWarningsKept = 50
)

// Warning is a failed or dropped delivery surfaced to the operator.
type Warning struct {
	At            time.Time `json:"at"`
	Sink          string    `json:"sink"`
	TransactionID string    `json:"transaction_id"`
	ReceiptNo     string    `json:"receipt_no"`
	Message       string    `json:"message"`
}

// DispatcherConfig tunes the delivery worker. Zero values take defaults;
// a zero RatePerSecond disables rate limiting.
type DispatcherConfig struct {
	QueueSize     int
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	WarningsKept  int
}

// Dispatcher queues settled transactions and hands each one to every sink
// from a single background worker.
type Dispatcher struct {
	sinks   []Sink
	queue   chan *entity.Transaction
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.Logger

	mu       sync.Mutex
	closed   bool
	warnings []Warning
	keep     int

	done chan struct{}
}

// NewDispatcher starts the worker. Call Close to drain and stop it.
func NewDispatcher(cfg DispatcherConfig, log *zap.Logger, sinks ...Sink) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.WarningsKept <= 0 {
		cfg.WarningsKept = DefaultWarningsKept
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	d := &Dispatcher{
		sinks:   sinks,
		queue:   make(chan *entity.Transaction, cfg.QueueSize),
		limiter: rate.NewLimiter(limit, cfg.Burst),
		timeout: cfg.Timeout,
		log:     log,
		keep:    cfg.WarningsKept,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue hands tx to the worker without blocking. It reports false when the
// queue is full or the dispatcher is closed; the drop is recorded as a warning.
func (d *Dispatcher) Enqueue(tx *entity.Transaction) bool {
	if len(d.sinks) == 0 {
		return true
	}
	snapshot := tx.Clone()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.addWarningLocked("dispatcher", snapshot, "dispatcher closed; record not sent")
		return false
	}

	select {
	case d.queue <- snapshot:
		return true
	default:
		d.addWarningLocked("dispatcher", snapshot, "sync queue full; record not sent")
		d.log.Warn("sync queue full, dropping record", zap.String("receipt_no", snapshot.ReceiptNo))
		return false
	}
}

// Warnings returns recorded warnings, oldest first.
func (d *Dispatcher) Warnings() []Warning {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Warning, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// ClearWarnings empties the warning list.
func (d *Dispatcher) ClearWarnings() {
	d.mu.Lock()
	d.warnings = nil
	d.mu.Unlock()
}

// SinkNames lists the configured sinks.
func (d *Dispatcher) SinkNames() []string {
	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	return names
}

// Close stops accepting records and waits until the queue is drained or ctx
// ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sync queue not drained: %w", ctx.Err())
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for tx := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, tx)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, tx *entity.Transaction) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		d.fail(sink, tx, fmt.Errorf("rate limited: %w", err))
		return
	}

	start := time.Now()
	if err := sink.Send(ctx, tx); err != nil {
		d.fail(sink, tx, err)
		return
	}
	d.log.Debug("record synced",
		zap.String("sink", sink.Name()),
		zap.String("receipt_no", tx.ReceiptNo),
		zap.Duration("took", time.Since(start)),
	)
}

func (d *Dispatcher) fail(sink Sink, tx *entity.Transaction, err error) {
	d.log.Warn("record sync failed",
		zap.String("sink", sink.Name()),
		zap.String("receipt_no", tx.ReceiptNo),
		zap.Error(err),
	)
	d.mu.Lock()
	d.addWarningLocked(sink.Name(), tx, err.Error())
	d.mu.Unlock()
}

func (d *Dispatcher) addWarningLocked(sink string, tx *entity.Transaction, msg string) {
	d.warnings = append(d.warnings, Warning{
		At:            time.Now(),
		Sink:          sink,
		TransactionID: tx.ID.String(),
		ReceiptNo:     tx.ReceiptNo,
		Message:       msg,
	})
	if over := len(d.warnings) - d.keep; over > 0 {
		d.warnings = append([]Warning(nil), d.warnings[over:]...)
	}
}
