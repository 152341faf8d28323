package main

import (
	"context"
	"time"

	"gitlab.com/gomidi/midi/v2"
)

// faderState tracks HUI touch capture for one zone. touched == false implies
// lastMove is the zero Time.
type faderState struct {
	touched  bool
	lastMove time.Time
}

// Engine translates incoming CC events into HUI messages. All fader state is
// owned by the Run loop and mutated synchronously; nothing here is safe for
// concurrent use.
type Engine struct {
	mapper       ZoneMapper
	nav          NavMap
	navOnNonzero bool
	releaseAfter time.Duration
	pollInterval time.Duration
	send         func(midi.Message) error

	faders [NumZones]faderState
}

func NewEngine(mapper ZoneMapper, nav NavMap, navOnNonzero bool, releaseAfter, pollInterval time.Duration, send func(midi.Message) error) *Engine {
	return &Engine{
		mapper:       mapper,
		nav:          nav,
		navOnNonzero: navOnNonzero,
		releaseAfter: releaseAfter,
		pollInterval: pollInterval,
		send:         send,
	}
}

// emit sends a message group to the output in order. Sends are
// fire-and-forget: a failure is logged and the remaining messages still go
// out, so a touch is always followed by its move/release counterpart.
func (e *Engine) emit(msgs []midi.Message) {
	for _, m := range msgs {
		if err := e.send(m); err != nil {
			logger.Error("hui: send failed", "err", err)
		}
	}
}

// HandleFader processes one mapped value-change event: touch on the first
// move of a gesture, then the 14-bit move, then record the move time.
func (e *Engine) HandleFader(ev CCEvent, now time.Time) {
	zone, ok := e.mapper.Zone(ev)
	if !ok {
		logger.Debug("fader: unmapped CC dropped", "ch", ev.Channel, "cc", ev.Controller)
		return
	}

	st := &e.faders[zone]
	if !st.touched {
		logger.Info("fader: touch", "zone", zone, "cc", ev.Controller)
		e.emit(huiTouch(zone))
		st.touched = true
	}

	value14 := scale7to14(int(ev.Value))
	e.emit(huiMove(zone, value14))
	st.lastMove = now
	logger.Debug("fader: move", "zone", zone, "value7", ev.Value, "value14", value14)
}

// HandleNav fires one complete press+release pulse for a mapped navigation
// CC. With navOnNonzero set, value 0 is treated as the button's release echo
// and ignored.
func (e *Engine) HandleNav(ev CCEvent) {
	if e.navOnNonzero && ev.Value == 0 {
		logger.Debug("nav: zero value ignored", "cc", ev.Controller)
		return
	}
	btn, ok := e.nav[ev.Controller]
	if !ok {
		logger.Debug("nav: unmapped CC dropped", "cc", ev.Controller)
		return
	}
	logger.Info("nav: press", "button", btn.Name, "cc", ev.Controller)
	e.emit(huiButtonPress(btn.Zone, btn.Port))
}

// Sweep releases every zone whose last move is at least releaseAfter old.
// A move handled earlier in the same iteration carries this iteration's
// timestamp, so it always wins over an impending timeout.
func (e *Engine) Sweep(now time.Time) {
	for z := range e.faders {
		st := &e.faders[z]
		if st.touched && !st.lastMove.IsZero() && now.Sub(st.lastMove) >= e.releaseAfter {
			logger.Info("fader: auto-release", "zone", z, "idle_ms", now.Sub(st.lastMove).Milliseconds())
			e.emit(huiRelease(z))
			st.touched = false
			st.lastMove = time.Time{}
		}
	}
}

// ReleaseAll force-releases every touched zone so the DAW never sees a fader
// left captured. Called once on shutdown.
func (e *Engine) ReleaseAll() {
	for z := range e.faders {
		st := &e.faders[z]
		if !st.touched {
			continue
		}
		logger.Info("fader: forced release", "zone", z)
		e.emit(huiRelease(z))
		st.touched = false
		st.lastMove = time.Time{}
	}
}

// Run drives the translation loop until ctx is cancelled: drain pending fader
// events in arrival order, then pending nav events, then the timeout sweep,
// then wait one poll interval. nav may be nil when no secondary input is
// configured. On exit every still-touched zone is released.
func (e *Engine) Run(ctx context.Context, faders, nav <-chan CCEvent) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.ReleaseAll()
			return
		case <-ticker.C:
			now := time.Now()
			drain(faders, func(ev CCEvent) { e.HandleFader(ev, now) })
			drain(nav, e.HandleNav)
			e.Sweep(now)
		}
	}
}

// drain consumes everything currently buffered on ch without blocking.
func drain(ch <-chan CCEvent, fn func(CCEvent)) {
	if ch == nil {
		return
	}
	for {
		select {
		case ev := <-ch:
			fn(ev)
		default:
			return
		}
	}
}
