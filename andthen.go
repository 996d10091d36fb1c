package stepz

type andThenPhase uint8

const (
	upActive andThenPhase = iota
	downActive
)

// AndThen runs an upstream process to completion, then a downstream process, and
// terminates with the pair of both terminals. Create it with NewAndThen.
//
// While upstream is active, its outputs pass through unchanged. The step on which
// upstream terminates is not visible to the caller: within the same Step call the
// upstream terminal is stored and the downstream is stepped. The downstream never
// steps before the upstream has terminated, and the upstream terminal is kept
// untouched until the whole AndThen terminates.
type AndThen[O, TU, TD any] struct {
	phase  andThenPhase
	up     Process[O, TU]
	upTerm TU
	down   Process[O, TD]
}

// NewAndThen concatenates up and down.
//
// For an upstream with outputs u1..un and terminal Tu and a downstream with outputs
// d1..dm and terminal Td, the result produces u1..un, d1..dm and then terminates with
// Pair{First: Tu, Second: Td}.
func NewAndThen[O, TU, TD any](up Process[O, TU], down Process[O, TD]) AndThen[O, TU, TD] {
	return AndThen[O, TU, TD]{phase: upActive, up: up, down: down}
}

// Step implements Process.
func (a AndThen[O, TU, TD]) Step() Update[Process[O, Pair[TU, TD]], O, Pair[TU, TD]] {
	if a.phase == upActive {
		u := a.up.Step()
		if next, out, ok := u.Continue(); ok {
			return advance[O, Pair[TU, TD]](AndThen[O, TU, TD]{phase: upActive, up: next, down: a.down}, out)
		}
		upTerm, _ := u.Terminal()
		a = AndThen[O, TU, TD]{phase: downActive, upTerm: upTerm, down: a.down}
	}

	u := a.down.Step()
	if next, out, ok := u.Continue(); ok {
		return advance[O, Pair[TU, TD]](AndThen[O, TU, TD]{phase: downActive, upTerm: a.upTerm, down: next}, out)
	}
	downTerm, _ := u.Terminal()
	return finish[O](Pair[TU, TD]{First: a.upTerm, Second: downTerm})
}

// UpstreamActive reports whether the upstream has not terminated yet.
func (a AndThen[O, TU, TD]) UpstreamActive() bool {
	return a.phase == upActive
}

// AndThenWith is AndThen for transducers: both sides take the same input type.
// Create it with NewAndThenWith.
//
// The input on which the upstream terminates is not lost: it is handed to the
// downstream within the same StepWith call, so every input reaches exactly one side
// that can respond to it. If the downstream terminates on that input too, the whole
// AndThenWith terminates at once.
type AndThenWith[I, O, TU, TD any] struct {
	phase  andThenPhase
	up     Transducer[I, O, TU]
	upTerm TU
	down   Transducer[I, O, TD]
}

// NewAndThenWith concatenates up and down, terminating with Pair{First: Tu, Second: Td}.
//
// Example, a header parser followed by a body parser over the same lines:
//
//	doc := stepz.NewAndThenWith(headerParser, bodyParser)
//	upd := doc.StepWith(line)
func NewAndThenWith[I, O, TU, TD any](up Transducer[I, O, TU], down Transducer[I, O, TD]) AndThenWith[I, O, TU, TD] {
	return AndThenWith[I, O, TU, TD]{phase: upActive, up: up, down: down}
}

// StepWith implements Transducer.
func (a AndThenWith[I, O, TU, TD]) StepWith(input I) Update[Transducer[I, O, Pair[TU, TD]], O, Pair[TU, TD]] {
	if a.phase == upActive {
		u := a.up.StepWith(input)
		if next, out, ok := u.Continue(); ok {
			return advanceWith[I, O, Pair[TU, TD]](AndThenWith[I, O, TU, TD]{phase: upActive, up: next, down: a.down}, out)
		}
		upTerm, _ := u.Terminal()
		a = AndThenWith[I, O, TU, TD]{phase: downActive, upTerm: upTerm, down: a.down}
	}

	u := a.down.StepWith(input)
	if next, out, ok := u.Continue(); ok {
		return advanceWith[I, O, Pair[TU, TD]](AndThenWith[I, O, TU, TD]{phase: downActive, upTerm: a.upTerm, down: next}, out)
	}
	downTerm, _ := u.Terminal()
	return finishWith[I, O](Pair[TU, TD]{First: a.upTerm, Second: downTerm})
}

// UpstreamActive reports whether the upstream has not terminated yet.
func (a AndThenWith[I, O, TU, TD]) UpstreamActive() bool {
	return a.phase == upActive
}
