package uiloop

// FlushPolicy configures when the loop runs queued callbacks.
type FlushPolicy int

const (
	// FlushOnWakeAndTick flushes when woken by a scheduled callback and on every tick.
	FlushOnWakeAndTick FlushPolicy = iota
	// FlushOnWake flushes only when woken by a scheduled callback.
	FlushOnWake
	// FlushOnTick flushes only on ticks, batching everything scheduled in between.
	FlushOnTick
)

type trigger int

const (
	triggerWake trigger = iota
	triggerTick
)

func shouldFlush(policy FlushPolicy, t trigger) bool {
	switch policy {
	case FlushOnWake:
		return t == triggerWake
	case FlushOnTick:
		return t == triggerTick
	default:
		return true
	}
}
