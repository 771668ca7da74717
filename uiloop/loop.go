// Package uiloop runs a terminal event loop that doubles as a delivery
// context for observables, the terminal counterpart of a UI main thread.
package uiloop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/mramsden/Observable/observable"
)

// RenderFunc draws a frame. The loop clears the screen before and shows it after.
type RenderFunc func(screen tcell.Screen)

// Config configures a Loop.
type Config struct {
	// Screen to drive. A terminal screen is created when nil.
	Screen tcell.Screen
	// Queue holds scheduled callbacks. A fresh queue is used when nil.
	Queue       *observable.Queue
	TickRate    time.Duration
	FlushPolicy FlushPolicy
	Render      RenderFunc
}

// Loop owns a screen and runs scheduled callbacks on its goroutine.
type Loop struct {
	screen    tcell.Screen
	queue     *observable.Queue
	scheduler *Scheduler
	tickRate  time.Duration
	policy    FlushPolicy
	render    RenderFunc
	log       zerolog.Logger

	quit     chan struct{}
	quitOnce sync.Once
	dirty    bool
}

type wakeEvent struct{}

// New creates a loop from cfg that logs to log.
func New(log zerolog.Logger, cfg Config) (*Loop, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	queue := cfg.Queue
	if queue == nil {
		queue = observable.NewQueue()
	}
	l := &Loop{
		screen:   screen,
		queue:    queue,
		tickRate: cfg.TickRate,
		policy:   cfg.FlushPolicy,
		render:   cfg.Render,
		log:      log.With().Str("component", "uiloop").Logger(),
		quit:     make(chan struct{}),
	}
	l.scheduler = NewScheduler(queue, l.wake)
	return l, nil
}

// Scheduler returns the delivery context that runs callbacks on the loop.
func (l *Loop) Scheduler() observable.Scheduler {
	return l.scheduler
}

// Screen returns the screen driven by the loop.
func (l *Loop) Screen() tcell.Screen {
	return l.screen
}

// Invalidate requests a redraw on the loop goroutine.
func (l *Loop) Invalidate() {
	l.scheduler.Schedule(func() {})
}

// Quit stops Run. Safe to call from any goroutine, more than once.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() {
		close(l.quit)
	})
}

func (l *Loop) wake() bool {
	return l.screen.PostEvent(tcell.NewEventInterrupt(wakeEvent{})) == nil
}

// Run initialises the screen and processes events until ctx is done, Quit is
// called, or Escape or Ctrl-C is pressed. It returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := l.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer l.screen.Fini()

	stopped := make(chan struct{})
	defer close(stopped)
	events := make(chan tcell.Event, 16)
	go l.pollEvents(events, stopped)

	var ticks <-chan time.Time
	if l.tickRate > 0 {
		ticker := time.NewTicker(l.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	l.log.Debug().Dur("tick_rate", l.tickRate).Int("flush_policy", int(l.policy)).Msg("loop started")
	defer func() {
		l.log.Debug().Msg("loop stopped")
	}()

	// Work scheduled before Init could not wake the loop.
	l.scheduler.resetPending()
	l.flush()
	l.dirty = true

	for {
		if l.dirty {
			l.draw()
			l.dirty = false
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return ctx.Err()
		case <-ticks:
			if shouldFlush(l.policy, triggerTick) && l.flush() > 0 {
				l.dirty = true
			}
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			if l.handleEvent(ev) {
				return ctx.Err()
			}
		}
	}
}

// handleEvent reports whether the loop should stop.
func (l *Loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(wakeEvent); !ok {
			return false
		}
		l.scheduler.resetPending()
		if shouldFlush(l.policy, triggerWake) && l.flush() > 0 {
			l.dirty = true
		}
	case *tcell.EventResize:
		l.screen.Sync()
		l.dirty = true
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		}
	}
	return false
}

func (l *Loop) flush() int {
	n := l.queue.Flush()
	if n > 0 {
		l.log.Trace().Int("callbacks", n).Msg("flushed")
	}
	return n
}

func (l *Loop) draw() {
	if l.render == nil {
		return
	}
	l.screen.Clear()
	l.render(l.screen)
	l.screen.Show()
}

func (l *Loop) pollEvents(events chan<- tcell.Event, stopped <-chan struct{}) {
	defer close(events)
	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stopped:
			return
		}
	}
}
