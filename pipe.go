package stepz

// Pipe composes an upstream transducer (I to X) with a downstream transducer (X to O).
// Create it with NewPipe.
//
// Each external input is fed to the upstream. If the upstream terminates, the Pipe
// terminates with the upstream terminal and the downstream's untouched state; the
// downstream never sees anything for that input. Otherwise the intermediate value is
// fed to the downstream within the same step. If the downstream terminates, the Pipe
// terminates with the downstream terminal and the upstream's post-step state. If both
// continue, the Pipe produces the downstream output.
//
// One input yields exactly one Pipe output or the Pipe terminal. Nothing is buffered
// across steps.
type Pipe[I, X, O, TU, TD any] struct {
	up   Transducer[I, X, TU]
	down Transducer[X, O, TD]
}

// NewPipe feeds the outputs of up into down.
//
// Example, a tokenizer feeding a parser that stops at the first complete statement:
//
//	p := stepz.NewPipe(tokenizer, parser)
//	upd := p.StepWith(line)
//	if term, ok := upd.Terminal(); ok {
//	    stmt, _ := term.ChildTerminal().GetRight()
//	}
func NewPipe[I, X, O, TU, TD any](up Transducer[I, X, TU], down Transducer[X, O, TD]) Pipe[I, X, O, TU, TD] {
	return Pipe[I, X, O, TU, TD]{up: up, down: down}
}

// StepWith implements Transducer.
func (p Pipe[I, X, O, TU, TD]) StepWith(input I) Update[Transducer[I, O, PipeTerminal[I, X, O, TU, TD]], O, PipeTerminal[I, X, O, TU, TD]] {
	upd := p.up.StepWith(input)
	nextUp, mid, ok := upd.Continue()
	if !ok {
		upTerm, _ := upd.Terminal()
		return finishWith[I, O](PipeTerminal[I, X, O, TU, TD]{
			upstreamDone: true,
			upTerm:       upTerm,
			down:         p.down,
		})
	}

	dnd := p.down.StepWith(mid)
	nextDown, out, ok := dnd.Continue()
	if !ok {
		downTerm, _ := dnd.Terminal()
		return finishWith[I, O](PipeTerminal[I, X, O, TU, TD]{
			up:       nextUp,
			downTerm: downTerm,
			inFlight: mid,
		})
	}

	return advanceWith[I, O, PipeTerminal[I, X, O, TU, TD]](Pipe[I, X, O, TU, TD]{up: nextUp, down: nextDown}, out)
}

// PipeTerminal is the terminal of a Pipe.
//
// A Pipe ends as soon as either constituent terminates, leaving the other one
// unterminated. PipeTerminal holds the terminal of the side that ended together with
// the complete state of the other side. Most callers only want ChildTerminal; the
// leftover state is available through Upstream, Downstream and Unwrap for callers
// able to resume it in a new pairing.
type PipeTerminal[I, X, O, TU, TD any] struct {
	upstreamDone bool

	// upstream terminated
	upTerm TU
	down   Transducer[X, O, TD]

	// downstream terminated
	up       Transducer[I, X, TU]
	downTerm TD
	inFlight X
}

// UpstreamTerminated reports which side ended the pipe.
func (t PipeTerminal[I, X, O, TU, TD]) UpstreamTerminated() bool {
	return t.upstreamDone
}

// Upstream returns the upstream terminal and the downstream's remaining state when
// the upstream ended the pipe.
func (t PipeTerminal[I, X, O, TU, TD]) Upstream() (terminal TU, down Transducer[X, O, TD], ok bool) {
	if !t.upstreamDone {
		return terminal, nil, false
	}
	return t.upTerm, t.down, true
}

// Downstream returns the upstream's remaining state and the downstream terminal when
// the downstream ended the pipe.
func (t PipeTerminal[I, X, O, TU, TD]) Downstream() (up Transducer[I, X, TU], terminal TD, ok bool) {
	if t.upstreamDone {
		return nil, terminal, false
	}
	return t.up, t.downTerm, true
}

// InFlight returns the intermediate value the upstream produced on the final step
// when the downstream terminated on it. The downstream received it but produced no
// output for it, and the upstream has already moved past it, so this is the only
// place it survives.
func (t PipeTerminal[I, X, O, TU, TD]) InFlight() (value X, ok bool) {
	if t.upstreamDone {
		return value, false
	}
	return t.inFlight, true
}

// Unwrap returns the full termination state: Left holds the upstream terminal and the
// downstream state, Right holds the upstream state and the downstream terminal.
func (t PipeTerminal[I, X, O, TU, TD]) Unwrap() Either[Pair[TU, Transducer[X, O, TD]], Pair[Transducer[I, X, TU], TD]] {
	if t.upstreamDone {
		return Left[Pair[TU, Transducer[X, O, TD]], Pair[Transducer[I, X, TU], TD]](
			Pair[TU, Transducer[X, O, TD]]{First: t.upTerm, Second: t.down})
	}
	return Right[Pair[TU, Transducer[X, O, TD]]](
		Pair[Transducer[I, X, TU], TD]{First: t.up, Second: t.downTerm})
}

// ChildTerminal discards the unterminated side and returns the terminal of the side
// that ended the pipe: Left for the upstream, Right for the downstream.
func (t PipeTerminal[I, X, O, TU, TD]) ChildTerminal() Either[TU, TD] {
	if t.upstreamDone {
		return Left[TU, TD](t.upTerm)
	}
	return Right[TU](t.downTerm)
}

// Lifted presents a Process as a Transducer taking Unit inputs. Create it with Lift.
type Lifted[O, T any] struct {
	p Process[O, T]
}

// Lift turns p into a Transducer that ignores its Unit input, so a plain process can
// be the upstream of a Pipe.
func Lift[O, T any](p Process[O, T]) Lifted[O, T] {
	return Lifted[O, T]{p: p}
}

// StepWith implements Transducer.
func (l Lifted[O, T]) StepWith(Unit) Update[Transducer[Unit, O, T], O, T] {
	return MapState(l.p.Step(), func(next Process[O, T]) Transducer[Unit, O, T] {
		return Lifted[O, T]{p: next}
	})
}

// Generated presents a Transducer taking Unit inputs as a Process. Create it with
// Generate.
type Generated[O, T any] struct {
	t Transducer[Unit, O, T]
}

// Generate turns a Unit-input transducer back into a Process.
func Generate[O, T any](t Transducer[Unit, O, T]) Generated[O, T] {
	return Generated[O, T]{t: t}
}

// Step implements Process.
func (g Generated[O, T]) Step() Update[Process[O, T], O, T] {
	return MapState(g.t.StepWith(Unit{}), func(next Transducer[Unit, O, T]) Process[O, T] {
		return Generated[O, T]{t: next}
	})
}

// Feed drives t with the outputs of src and presents the result as a Process. It is
// Generate(NewPipe(Lift(src), t)): the process ends when src runs out or when t
// terminates, whichever comes first.
//
// Example:
//
//	running := stepz.Feed(stepz.FromSlice([]int{1, 2, 3, 4, 5}), sum)
//	totals, term := stepz.Collect(running)
func Feed[I, TI, O, T any](src Process[I, TI], t Transducer[I, O, T]) Generated[O, PipeTerminal[Unit, I, O, TI, T]] {
	var up Transducer[Unit, I, TI] = Lift(src)
	return Generate[O](Transducer[Unit, O, PipeTerminal[Unit, I, O, TI, T]](NewPipe(up, t)))
}
