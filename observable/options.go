package observable

import "github.com/rs/zerolog"

// Option configures an Observable at construction time.
type Option func(*config)

type config struct {
	name     string
	log      zerolog.Logger
	delivery Scheduler
	update   Scheduler
}

// WithName labels the observable in logs. By default a ULID is used.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithDefaultScheduler sets the delivery context used by subscriptions that
// do not pick one with On. The default is Main().
func WithDefaultScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.delivery = s
		}
	}
}

// WithUpdateScheduler sets the context Post assigns values on. The default is Main().
func WithUpdateScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.update = s
		}
	}
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	initial   bool
	scheduler Scheduler
}

// WithInitial replays the current value as (v, v) once the subscription is registered.
func WithInitial() SubscribeOption {
	return func(c *subscribeConfig) {
		c.initial = true
	}
}

// On delivers the subscription's callbacks on s.
func On(s Scheduler) SubscribeOption {
	return func(c *subscribeConfig) {
		if s != nil {
			c.scheduler = s
		}
	}
}
