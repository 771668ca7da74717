package observable

import (
	"reflect"

	"github.com/oklog/ulid/v2"
)

// Callback receives the value before and after a change.
type Callback[T any] func(oldValue, newValue T)

// Token identifies a single subscription.
type Token struct {
	id ulid.ULID
}

func newToken() Token {
	return Token{id: ulid.Make()}
}

// IsZero reports whether t was never issued by Subscribe.
func (t Token) IsZero() bool {
	return t.id == ulid.ULID{}
}

// String returns the canonical ULID encoding.
func (t Token) String() string {
	return t.id.String()
}

type entry[T any] struct {
	token     Token
	owner     any
	scheduler Scheduler
	fn        Callback[T]
}

func (e entry[T]) deliver(oldValue, newValue T) {
	fn := e.fn
	e.scheduler.Schedule(func() {
		fn(oldValue, newValue)
	})
}

// hasIdentity reports whether owner can be compared by reference.
// Pointers to zero-size values do not qualify: distinct zero-size
// allocations may share an address.
func hasIdentity(owner any) bool {
	if owner == nil {
		return false
	}
	typ := reflect.TypeOf(owner)
	switch typ.Kind() {
	case reflect.Pointer:
		return typ.Elem().Size() > 0
	case reflect.UnsafePointer, reflect.Map, reflect.Chan:
		return true
	default:
		return false
	}
}

// sameOwner compares two owners by reference identity.
// Owners without identity never match, not even themselves.
func sameOwner(a, b any) bool {
	if !hasIdentity(a) || !hasIdentity(b) {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
