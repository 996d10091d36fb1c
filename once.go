package stepz

import (
	"errors"
	"sync/atomic"
)

// ErrConsumed is reported when a process guarded by Once is stepped a second time.
var ErrConsumed = errors.New("stepz: process already consumed")

// Affine is a process that may be stepped at most once. Create it with Once.
//
// Go has no way to invalidate a value when it is passed to Step, so the single-use
// contract of Process is a convention. Affine turns a violation into a reported
// error: Step panics with ErrConsumed on reuse and TryStep returns it. Every
// continuation an Affine produces is itself an Affine.
//
// The consumed flag is claimed with a compare-and-swap, so when several goroutines
// race to step the same value exactly one of them wins.
type Affine[O, T any] struct {
	p        Process[O, T]
	consumed atomic.Bool
}

// Once guards p so that it can be stepped only once.
func Once[O, T any](p Process[O, T]) *Affine[O, T] {
	return &Affine[O, T]{p: p}
}

// Step implements Process. It panics with ErrConsumed if the value was already
// stepped or discarded.
func (a *Affine[O, T]) Step() Update[Process[O, T], O, T] {
	u, err := a.TryStep()
	if err != nil {
		panic(err)
	}
	return u
}

// TryStep is Step without the panic: a reused value yields ErrConsumed.
//
// When err is non-nil the returned Update is the zero value, which carries no
// continuation, and must be ignored.
func (a *Affine[O, T]) TryStep() (Update[Process[O, T], O, T], error) {
	if !a.consumed.CompareAndSwap(false, true) {
		return Update[Process[O, T], O, T]{}, ErrConsumed
	}
	p := a.p
	a.p = nil
	return MapState(p.Step(), func(next Process[O, T]) Process[O, T] {
		return Once(next)
	}), nil
}

// Discard abandons the process without stepping it. Dropping an unstepped process is
// always a valid cancellation; Discard additionally marks the value consumed.
func (a *Affine[O, T]) Discard() {
	if a.consumed.CompareAndSwap(false, true) {
		a.p = nil
	}
}

// Consumed reports whether the value has been stepped or discarded.
func (a *Affine[O, T]) Consumed() bool {
	return a.consumed.Load()
}
