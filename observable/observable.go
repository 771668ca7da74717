// Package observable provides a thread-safe value container that notifies
// subscribers of every change on a delivery context of their choosing.
package observable

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Observable holds a value and notifies subscribers each time it is set.
//
// Registry changes and notification fan-out run on a private SerialQueue, so
// an enumeration for one change never interleaves with a subscribe or an
// unsubscribe. Notifications are not deduplicated: setting an equal value
// still notifies.
type Observable[T any] struct {
	name     string
	log      zerolog.Logger
	delivery Scheduler
	update   Scheduler
	serial   *SerialQueue

	mu    sync.Mutex
	value T

	// Owned by serial.
	subs      map[Token]entry[T]
	delivered T
	closed    bool
}

// New creates an observable holding initial. No notification is sent for it.
func New[T any](initial T, opts ...Option) *Observable[T] {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.name == "" {
		cfg.name = ulid.Make().String()
	}
	if cfg.delivery == nil {
		cfg.delivery = Main()
	}
	if cfg.update == nil {
		cfg.update = Main()
	}
	return &Observable[T]{
		name:      cfg.name,
		log:       cfg.log.With().Str("component", "observable").Str("observable", cfg.name).Logger(),
		delivery:  cfg.delivery,
		update:    cfg.update,
		serial:    NewSerialQueue("observable." + cfg.name),
		value:     initial,
		delivered: initial,
	}
}

// Name returns the observable's label.
func (o *Observable[T]) Name() string {
	if o == nil {
		return ""
	}
	return o.name
}

// Get returns the current value.
// Notifications for the latest assignment may still be in flight.
func (o *Observable[T]) Get() T {
	if o == nil {
		var zero T
		return zero
	}
	o.mu.Lock()
	value := o.value
	o.mu.Unlock()
	return value
}

// Set assigns value in the calling goroutine and schedules one notification
// per subscriber carrying the previous and the new value.
func (o *Observable[T]) Set(value T) {
	if o == nil {
		return
	}
	o.mu.Lock()
	old := o.value
	o.value = value
	o.scheduleNotify(old, value)
	o.mu.Unlock()
}

// Update replaces the value with fn(current) atomically and notifies like Set.
// fn runs under the observable's lock and must not call back into it.
func (o *Observable[T]) Update(fn func(T) T) {
	if o == nil || fn == nil {
		return
	}
	o.mu.Lock()
	old := o.value
	value := fn(old)
	o.value = value
	o.scheduleNotify(old, value)
	o.mu.Unlock()
}

// Post schedules Set(value) on the update context and returns immediately.
// It is safe to call from any goroutine.
func (o *Observable[T]) Post(value T) {
	if o == nil {
		return
	}
	o.update.Schedule(func() {
		o.Set(value)
	})
}

// Subscribe registers fn under owner and returns its token. Registration is
// asynchronous; changes assigned before it lands are not delivered.
//
// owner is matched by reference identity in Unsubscribe, so it must be a
// pointer to a non-zero-size value, a map or a channel. Other owners,
// including pointers to empty structs, are accepted but can only be removed
// with Cancel.
func (o *Observable[T]) Subscribe(owner any, fn Callback[T], opts ...SubscribeOption) Token {
	if o == nil || fn == nil {
		return Token{}
	}
	cfg := subscribeConfig{scheduler: o.delivery}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := entry[T]{
		token:     newToken(),
		owner:     owner,
		scheduler: cfg.scheduler,
		fn:        fn,
	}
	if !hasIdentity(owner) {
		o.log.Warn().Str("token", e.token.String()).Msgf("owner of type %T cannot be matched by Unsubscribe", owner)
	}
	o.serial.Schedule(func() {
		if o.closed {
			o.log.Debug().Str("token", e.token.String()).Msg("subscribe after close ignored")
			return
		}
		if o.subs == nil {
			o.subs = make(map[Token]entry[T])
		}
		o.subs[e.token] = e
		o.log.Debug().Str("token", e.token.String()).Bool("initial", cfg.initial).Int("subscribers", len(o.subs)).Msg("subscribed")
		if cfg.initial {
			e.deliver(o.delivered, o.delivered)
		}
	})
	return e.token
}

// Unsubscribe removes every subscription registered under owner.
// Notifications already handed to a scheduler still run.
func (o *Observable[T]) Unsubscribe(owner any) {
	if o == nil {
		return
	}
	o.serial.Schedule(func() {
		removed := 0
		for token, e := range o.subs {
			if sameOwner(e.owner, owner) {
				delete(o.subs, token)
				removed++
			}
		}
		if removed > 0 {
			o.log.Debug().Int("removed", removed).Int("subscribers", len(o.subs)).Msg("unsubscribed")
		}
	})
}

// Cancel removes the subscription identified by token.
func (o *Observable[T]) Cancel(token Token) {
	if o == nil || token.IsZero() {
		return
	}
	o.serial.Schedule(func() {
		if _, ok := o.subs[token]; !ok {
			return
		}
		delete(o.subs, token)
		o.log.Debug().Str("token", token.String()).Int("subscribers", len(o.subs)).Msg("cancelled")
	})
}

// Close drops all subscriptions. Later subscriptions are ignored; the value
// can still be read and set.
func (o *Observable[T]) Close() {
	if o == nil {
		return
	}
	o.serial.Schedule(func() {
		if o.closed {
			return
		}
		o.closed = true
		o.log.Debug().Int("dropped", len(o.subs)).Msg("closed")
		o.subs = nil
	})
}

// scheduleNotify must be called with mu held so notifications reach the
// serial queue in assignment order.
func (o *Observable[T]) scheduleNotify(oldValue, newValue T) {
	o.serial.Schedule(func() {
		o.notify(oldValue, newValue)
	})
}

func (o *Observable[T]) notify(oldValue, newValue T) {
	o.delivered = newValue
	for _, e := range o.subs {
		e.deliver(oldValue, newValue)
	}
}
