package notify

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

var ErrDispatcherStopped = errors.New("notify: dispatcher stopped")

// Dispatcher fans alerts out to sinks from a single goroutine. Dispatch never
// blocks: when the queue is full the alert is dropped and counted.
type Dispatcher struct {
	mu      sync.Mutex
	sinks   []Sink
	queue   chan Alert
	doneCh  chan struct{}
	logger  *slog.Logger
	started bool
	stopped bool
	dropped uint64
	failed  uint64
}

func NewDispatcher(bufferSize int, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		sinks:  sinks,
		queue:  make(chan Alert, bufferSize),
		doneCh: make(chan struct{}),
		logger: logger,
	}
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	go d.loop()
}

// Stop drains queued alerts and waits for the dispatcher goroutine.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	started := d.started
	close(d.queue)
	d.mu.Unlock()
	if started {
		<-d.doneCh
	}
}

func (d *Dispatcher) Dispatch(a Alert) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- a:
	default:
		atomic.AddUint64(&d.dropped, 1)
	}
	return nil
}

func (d *Dispatcher) Dropped() uint64 {
	return atomic.LoadUint64(&d.dropped)
}

func (d *Dispatcher) Failed() uint64 {
	return atomic.LoadUint64(&d.failed)
}

func (d *Dispatcher) loop() {
	defer close(d.doneCh)
	for a := range d.queue {
		for _, sink := range d.sinks {
			if err := sink.Send(a); err != nil {
				atomic.AddUint64(&d.failed, 1)
				d.logger.Warn("alert sink failed", slog.String("alert_id", a.ID), slog.String("error", err.Error()))
			}
		}
	}
}
