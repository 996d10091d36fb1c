package stepz

import "iter"

// Slice is a Process over the elements of a slice. Create it with FromSlice.
type Slice[O any] struct {
	items []O
}

// FromSlice produces the elements of items in order and terminates with Unit.
// The slice is not copied; it must not be modified while the process is in use.
func FromSlice[O any](items []O) Slice[O] {
	return Slice[O]{items: items}
}

// Step implements Process.
func (s Slice[O]) Step() Update[Process[O, Unit], O, Unit] {
	if len(s.items) == 0 {
		return finish[O](Unit{})
	}
	return advance[O, Unit](Slice[O]{items: s.items[1:]}, s.items[0])
}

// Empty returns a process that terminates immediately with Unit.
func Empty[O any]() Slice[O] {
	return Slice[O]{}
}

// Pull is a Process over a cursor function. Create it with FromPull.
type Pull[O any] struct {
	next func() (O, bool)
}

// FromPull produces values from next until it reports false, then terminates with
// Unit. next is the cursor: it owns the position, so a Pull must be stepped in order
// and never reused.
func FromPull[O any](next func() (O, bool)) Pull[O] {
	return Pull[O]{next: next}
}

// Step implements Process.
func (p Pull[O]) Step() Update[Process[O, Unit], O, Unit] {
	v, ok := p.next()
	if !ok {
		return finish[O](Unit{})
	}
	return advance[O, Unit](p, v)
}

// FromSeq adapts a push iterator. The returned stop function releases the iterator
// and must be called if the process is abandoned before it terminates; calling it
// after termination is harmless.
//
// Example:
//
//	p, stop := stepz.FromSeq(maps.Keys(m))
//	defer stop()
func FromSeq[O any](seq iter.Seq[O]) (Pull[O], func()) {
	next, stop := iter.Pull(seq)
	return FromPull(next), stop
}

// Repeated is an infinite Process. Create it with Repeat.
type Repeated[O any] struct {
	v O
}

// Repeat produces v forever. It never terminates, so ForEach and Drain diverge on it;
// pair it with ForEachUntil, Take, a terminating combinator or a Driver step limit.
func Repeat[O any](v O) Repeated[O] {
	return Repeated[O]{v: v}
}

// Step implements Process.
func (r Repeated[O]) Step() Update[Process[O, Unit], O, Unit] {
	return advance[O, Unit](r, r.v)
}

// All adapts p into a single-use push iterator over its outputs. Breaking out of the
// range loop drops the rest of p. The iterator steps p the first time it is ranged
// over; later ranges yield nothing.
//
// Example:
//
//	for word := range stepz.All(words) {
//	    fmt.Println(word)
//	}
func All[O any](p Process[O, Unit]) iter.Seq[O] {
	return func(yield func(O) bool) {
		if p == nil {
			return
		}
		cur := p
		p = nil
		for {
			next, out, ok := cur.Step().Continue()
			if !ok || !yield(out) {
				return
			}
			cur = next
		}
	}
}
