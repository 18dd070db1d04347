package countdown

import (
	"time"

	"github.com/google/uuid"
)

const DefaultTickInterval = time.Second

// Handle identifies one run of the countdown. Ticks carrying any handle other
// than the live one are ignored, so a cancelled callback can never mutate state.
type Handle uint64

type Options struct {
	FocusSeconds int
	// RestSeconds of zero builds a single-mode controller.
	RestSeconds  int
	Clock        Clock
	TickInterval time.Duration
}

type Snapshot struct {
	Mode         Mode
	State        State
	TotalSeconds int
	SecondsLeft  int
	Running      bool
	EndsAt       time.Time
	DualMode     bool
}

type Completion struct {
	ID           string
	Mode         Mode
	TotalSeconds int
	At           time.Time
	Next         Mode
}

type EventType string

const (
	EventChange   EventType = "change"
	EventComplete EventType = "complete"
	EventMode     EventType = "mode"
)

type Event struct {
	Type       EventType
	Snapshot   Snapshot
	Completion *Completion
}

type subscriber struct {
	id int
	fn func(Event)
}

// Controller is the countdown state machine. It is not safe for concurrent
// use; callers serialize access (the bubbletea update loop or a Runner).
type Controller struct {
	clock     Clock
	interval  time.Duration
	durations map[Mode]int
	dual      bool

	mode        Mode
	state       State
	total       int
	secondsLeft int
	remaining   time.Duration
	endsAt      time.Time

	live Handle
	gen  Handle

	last      *Completion
	subs      []subscriber
	nextSubID int
}

func New(opts Options) (*Controller, error) {
	if err := validateSeconds(opts.FocusSeconds); err != nil {
		return nil, err
	}
	if opts.RestSeconds < 0 {
		return nil, validateSeconds(opts.RestSeconds)
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	c := &Controller{
		clock:    opts.Clock,
		interval: opts.TickInterval,
		durations: map[Mode]int{
			ModeFocus: opts.FocusSeconds,
			ModeRest:  opts.RestSeconds,
		},
		dual: opts.RestSeconds > 0,
		mode: ModeFocus,
	}
	c.load(ModeFocus)
	return c, nil
}

func (c *Controller) TickInterval() time.Duration { return c.interval }

func (c *Controller) Clock() Clock { return c.clock }

// Handle returns the live run handle, or zero when not running.
func (c *Controller) Handle() Handle { return c.live }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) DualMode() bool { return c.dual }

func (c *Controller) ModeSeconds(m Mode) int { return c.durations[m] }

func (c *Controller) LastCompletion() (Completion, bool) {
	if c.last == nil {
		return Completion{}, false
	}
	return *c.last, true
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Mode:         c.mode,
		State:        c.state,
		TotalSeconds: c.total,
		SecondsLeft:  c.secondsLeft,
		Running:      c.state == StateRunning,
		EndsAt:       c.endsAt,
		DualMode:     c.dual,
	}
}

// Subscribe registers fn for every transition. The returned func removes it.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.nextSubID++
	id := c.nextSubID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Configure loads a new duration for the active mode and returns to Idle.
func (c *Controller) Configure(seconds int) error {
	if err := validateSeconds(seconds); err != nil {
		return err
	}
	c.cancel()
	c.durations[c.mode] = seconds
	c.load(c.mode)
	c.emit(Event{Type: EventChange})
	return nil
}

// Start begins or resumes the countdown. The bool reports whether a new run
// was started; starting while already running is a no-op.
func (c *Controller) Start() (Handle, bool) {
	if c.state == StateRunning {
		return c.live, false
	}
	if c.remaining <= 0 {
		c.remaining = seconds(c.total)
	}
	now := c.clock.Now()
	c.endsAt = now.Add(c.remaining)
	c.secondsLeft = roundSeconds(c.remaining)
	c.state = StateRunning
	c.gen++
	c.live = c.gen
	c.emit(Event{Type: EventChange})
	return c.live, true
}

func (c *Controller) Pause() {
	if c.state != StateRunning {
		return
	}
	now := c.clock.Now()
	remaining := c.endsAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	c.cancel()
	c.remaining = remaining
	c.secondsLeft = roundSeconds(remaining)
	if c.secondsLeft == 0 {
		c.expire(now)
		return
	}
	c.state = StatePaused
	c.emit(Event{Type: EventChange})
}

func (c *Controller) Reset() {
	c.cancel()
	c.load(c.mode)
	c.emit(Event{Type: EventChange})
}

// Tick recomputes the remaining time from the absolute deadline. It is a
// no-op unless h is the live handle.
func (c *Controller) Tick(h Handle) Snapshot {
	if h == 0 || h != c.live || c.state != StateRunning {
		return c.Snapshot()
	}
	now := c.clock.Now()
	c.secondsLeft = roundSeconds(c.endsAt.Sub(now))
	if c.secondsLeft == 0 {
		c.expire(now)
		return c.Snapshot()
	}
	c.emit(Event{Type: EventChange})
	return c.Snapshot()
}

func (c *Controller) SwitchMode(m Mode) error {
	if !m.IsValid() {
		return ErrInvalidMode
	}
	if !c.dual {
		return ErrModeUnavailable
	}
	c.cancel()
	c.load(m)
	c.emit(Event{Type: EventMode})
	return nil
}

func (c *Controller) expire(now time.Time) {
	c.cancel()
	c.state = StateExpired
	c.secondsLeft = 0
	c.remaining = 0
	done := &Completion{
		ID:           uuid.NewString(),
		Mode:         c.mode,
		TotalSeconds: c.total,
		At:           now,
		Next:         c.mode,
	}
	// Only focus auto-advances. Rest stays expired until the user acts.
	advance := c.dual && c.mode == ModeFocus
	if advance {
		done.Next = ModeRest
	}
	c.last = done
	c.emit(Event{Type: EventComplete, Completion: done})
	if advance {
		c.load(ModeRest)
		c.emit(Event{Type: EventMode})
	}
}

func (c *Controller) load(m Mode) {
	c.mode = m
	c.total = c.durations[m]
	c.state = StateIdle
	c.secondsLeft = c.total
	c.remaining = seconds(c.total)
	c.endsAt = time.Time{}
}

func (c *Controller) cancel() {
	c.live = 0
	c.endsAt = time.Time{}
}

func (c *Controller) emit(ev Event) {
	ev.Snapshot = c.Snapshot()
	subs := append([]subscriber(nil), c.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func roundSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Round(time.Second) / time.Second)
}
