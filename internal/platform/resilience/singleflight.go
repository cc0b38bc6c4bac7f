package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent loads of the same key into one call.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*flight
}

type flight struct {
	done    chan struct{}
	val     any
	err     error
	waiters int
}

// Do runs fn for key unless a call is already in flight, in which case it waits for
// that call and returns its result with shared=true. A panic in fn is returned as an
// error to every caller.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (v any, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight)
	}

	if f, ok := g.calls[key]; ok {
		f.waiters++
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.calls[key] = f
	g.mu.Unlock()

	func() {
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("singleflight %q panicked: %v", key, r)
			}
		}()
		f.val, f.err = fn()
	}()

	g.mu.Lock()
	delete(g.calls, key)
	shared = f.waiters > 0
	g.mu.Unlock()
	close(f.done)

	return f.val, f.err, shared
}
