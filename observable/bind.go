package observable

import "sync"

// Releaser ends whatever it anchors.
type Releaser interface {
	Release()
}

// Binding anchors one subscription. The subscription lives until Release is
// called; a Binding that is dropped without Release keeps its callback
// registered until the observable is closed.
type Binding struct {
	once    sync.Once
	release func()
}

// Bind subscribes fn to source with the returned Binding as owner.
func Bind[T any](source Readable[T], fn Callback[T], opts ...SubscribeOption) *Binding {
	b := &Binding{}
	if source == nil || fn == nil {
		return b
	}
	source.Subscribe(b, fn, opts...)
	b.release = func() {
		source.Unsubscribe(b)
	}
	return b
}

// Release unsubscribes the binding. Safe to call more than once.
func (b *Binding) Release() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		if b.release != nil {
			b.release()
		}
	})
}
