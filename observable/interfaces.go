package observable

// Readable exposes read-only observable state.
type Readable[T any] interface {
	Get() T
	Subscribe(owner any, fn Callback[T], opts ...SubscribeOption) Token
	Unsubscribe(owner any)
	Cancel(token Token)
}

// Writable exposes read/write observable state.
type Writable[T any] interface {
	Readable[T]
	Set(value T)
	Post(value T)
	Update(fn func(T) T)
}

var _ Writable[int] = (*Observable[int])(nil)
