package observable

import "testing"

func TestBind_EmitsValueOnChange(t *testing.T) {
	o := New("Test 1")
	fn, calls := recorder[string]()
	binding := Bind[string](o, fn)
	defer binding.Release()

	o.Post("Test 2")

	expectChange(t, calls, "Test 1", "Test 2")
}

func TestBind_EmitsInitialValue(t *testing.T) {
	o := New("Test 1")
	fn, calls := recorder[string]()
	binding := Bind[string](o, fn, WithInitial())
	defer binding.Release()

	expectChange(t, calls, "Test 1", "Test 1")
}

func TestBind_OnlyEmitsInitialWhenRequested(t *testing.T) {
	o := New("Test 1")
	fn, calls := recorder[string]()
	binding := Bind[string](o, fn)
	defer binding.Release()

	expectNoChange(t, calls)
}

func TestBind_ReleaseStopsDelivery(t *testing.T) {
	queue := NewQueue()
	o := New(0)
	fn, calls := recorder[int]()
	kept := Bind[int](o, fn, On(queue))
	released := Bind[int](o, func(int, int) {
		t.Fatalf("released binding must not be notified")
	}, On(queue))
	defer kept.Release()

	released.Release()
	released.Release()
	o.Set(1)
	settle(t, o)

	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback, got %d", flushed)
	}
	expectChange(t, calls, 0, 1)
}

func TestBind_NilInputs(t *testing.T) {
	var source Readable[int]
	b := Bind(source, func(int, int) {})
	b.Release()

	b = Bind[int](New(0), nil)
	b.Release()

	var nilBinding *Binding
	nilBinding.Release()
}

func TestBindings_Release(t *testing.T) {
	bs := &Bindings{}
	calls := 0

	bs.Add(releaseFunc(func() { calls++ }))
	bs.Add(releaseFunc(func() { calls++ }))
	bs.Add(nil)
	if bs.Len() != 2 {
		t.Fatalf("expected 2 tracked releasers, got %d", bs.Len())
	}

	bs.Release()
	if calls != 2 {
		t.Fatalf("expected 2 release calls, got %d", calls)
	}

	bs.Release()
	if calls != 2 {
		t.Fatalf("expected no extra calls after release, got %d", calls)
	}
}

func TestBindings_Scheduler(t *testing.T) {
	o := New(1)
	queue := NewQueue()
	bs := NewBindings(queue)
	fn, calls := recorder[int]()

	BindTo[int](bs, o, fn)
	settle(t, o)

	o.Set(2)
	settle(t, o)
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", flushed)
	}
	expectChange(t, calls, 1, 2)

	bs.Release()
	o.Set(3)
	settle(t, o)
	if flushed := queue.Flush(); flushed != 0 {
		t.Fatalf("expected no callbacks after release, got %d", flushed)
	}
}

func TestBindings_SetScheduler(t *testing.T) {
	o := New(1)
	first, second := NewQueue(), NewQueue()
	bs := &Bindings{}
	fn, calls := recorder[int]()

	bs.SetScheduler(first)
	if bs.Scheduler() != Scheduler(first) {
		t.Fatalf("expected first queue as default scheduler")
	}
	BindTo[int](bs, o, fn, On(second))
	settle(t, o)

	o.Set(2)
	settle(t, o)
	if flushed := first.Flush(); flushed != 0 {
		t.Fatalf("expected On to override the default, got %d on default", flushed)
	}
	if flushed := second.Flush(); flushed != 1 {
		t.Fatalf("expected 1 callback on chosen queue, got %d", flushed)
	}
	expectChange(t, calls, 1, 2)
}

func TestBindings_NestedRelease(t *testing.T) {
	inner := &Bindings{}
	outer := &Bindings{}
	calls := 0
	inner.Add(releaseFunc(func() { calls++ }))
	outer.Add(inner)

	outer.Release()
	if calls != 1 || inner.Len() != 0 {
		t.Fatalf("expected nested bindings to be released, calls=%d len=%d", calls, inner.Len())
	}
}

type releaseFunc func()

func (f releaseFunc) Release() { f() }
