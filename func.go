package stepz

// StepFunc is a Process driven by a closure. Create it with FromStepFunc.
type StepFunc[O, T any] struct {
	fn func() (O, T, bool)
}

// FromStepFunc lifts a closure into a Process without defining a dedicated type.
//
// Every Step calls fn exactly once. fn returns an output with done == false, or a
// terminal with done == true. The closure owns whatever mutable state it captures;
// no validation is performed, and fn is never called again by a well-formed caller
// once it has reported done.
//
// Example, counting down from three and terminating with a message:
//
//	n := 3
//	countdown := stepz.FromStepFunc(func() (int, string, bool) {
//	    if n == 0 {
//	        return 0, "liftoff", true
//	    }
//	    n--
//	    return n + 1, "", false
//	})
func FromStepFunc[O, T any](fn func() (output O, terminal T, done bool)) StepFunc[O, T] {
	return StepFunc[O, T]{fn: fn}
}

// Step implements Process.
func (s StepFunc[O, T]) Step() Update[Process[O, T], O, T] {
	out, term, done := s.fn()
	if done {
		return finish[O](term)
	}
	return advance[O, T](s, out)
}

// StepWithFunc is a Transducer driven by a closure. Create it with FromStepWithFunc.
type StepWithFunc[I, O, T any] struct {
	fn func(I) (O, T, bool)
}

// FromStepWithFunc lifts a closure into a Transducer.
//
// Every StepWith calls fn exactly once with the input. The contract matches
// FromStepFunc.
//
// Example, accumulating inputs until the running total exceeds ten:
//
//	acc := 0
//	sum := stepz.FromStepWithFunc(func(inc int) (int, string, bool) {
//	    acc += inc
//	    if acc > 10 {
//	        return 0, fmt.Sprintf("overflow: %d > 10", acc), true
//	    }
//	    return acc, "", false
//	})
func FromStepWithFunc[I, O, T any](fn func(input I) (output O, terminal T, done bool)) StepWithFunc[I, O, T] {
	return StepWithFunc[I, O, T]{fn: fn}
}

// StepWith implements Transducer.
func (s StepWithFunc[I, O, T]) StepWith(input I) Update[Transducer[I, O, T], O, T] {
	out, term, done := s.fn(input)
	if done {
		return finishWith[I, O](term)
	}
	return advanceWith[I, O, T](s, out)
}
