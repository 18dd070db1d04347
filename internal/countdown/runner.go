package countdown

import (
	"context"
	"sync"
)

// Runner drives a Controller from its own goroutine with a periodic ticker.
// Subscribers of the wrapped Controller are called with the Runner's lock
// held and must not call back into the Runner.
type Runner struct {
	mu   sync.Mutex
	ctrl *Controller
	stop chan struct{}
	live Handle
	wg   sync.WaitGroup
}

func NewRunner(ctrl *Controller) *Runner {
	return &Runner{ctrl: ctrl}
}

// Start begins a run and ticks it until the run ends. Cancelling ctx pauses
// the run.
func (r *Runner) Start(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, started := r.ctrl.Start()
	if !started {
		return false
	}
	stop := make(chan struct{})
	r.stop = stop
	r.live = h
	r.wg.Add(1)
	go r.loop(ctx, h, stop)
	return true
}

// Toggle pauses a running countdown or starts a stopped one.
func (r *Runner) Toggle(ctx context.Context) {
	r.mu.Lock()
	running := r.ctrl.Snapshot().Running
	r.mu.Unlock()
	if running {
		r.Pause()
		return
	}
	r.Start(ctx)
}

func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.Pause()
	r.releaseLocked()
}

func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctrl.Reset()
	r.releaseLocked()
}

func (r *Runner) Configure(seconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.ctrl.Configure(seconds)
	r.releaseLocked()
	return err
}

func (r *Runner) SwitchMode(m Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.ctrl.SwitchMode(m)
	r.releaseLocked()
	return err
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctrl.Snapshot()
}

// Stop cancels any live ticker and waits for its goroutine to exit. The
// countdown itself is left as is.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
		r.live = 0
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, h Handle, stop <-chan struct{}) {
	defer r.wg.Done()
	ticker := r.ctrl.Clock().NewTicker(r.ctrl.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// A run nobody ticks would stay Running forever, so it is paused.
			r.mu.Lock()
			if r.ctrl.Handle() == h {
				r.ctrl.Pause()
			}
			r.releaseLocked()
			r.mu.Unlock()
			return
		case <-stop:
			return
		case <-ticker.C():
			r.mu.Lock()
			r.ctrl.Tick(h)
			done := r.ctrl.Handle() != h
			if done {
				r.releaseLocked()
			}
			r.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// releaseLocked closes the stop channel once the controller has moved past
// the handle the ticker goroutine was started for.
func (r *Runner) releaseLocked() {
	if r.stop == nil || r.ctrl.Handle() == r.live {
		return
	}
	close(r.stop)
	r.stop = nil
	r.live = 0
}
