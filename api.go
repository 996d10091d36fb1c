// Package stepz provides step-wise processes with an explicit, typed terminal value
// and an algebra of combinators for building larger processes from smaller ones.
//
// # Overview
//
// A conventional iterator signals exhaustion with an untyped "done". A stepz Process
// instead ends by producing a Terminal value of its own type: an accumulated count, a
// final error, or the pair of terminals of two concatenated processes. Termination is
// a first-class, inspectable outcome rather than an absence.
//
// # Core Concepts
//
// The library is built around a single, minimal interface:
//
//	type Process[O, T any] interface {
//	    Step() Update[Process[O, T], O, T]
//	}
//
// Step consumes the receiver and returns an Update which is either Next (a new process
// state plus one output) or Terminate (the terminal value and nothing else). Callers
// continue only with the returned state; the old value must not be stepped again.
// Go cannot enforce this at compile time, so the contract is documented on every
// implementation and can be checked at runtime with Once.
//
// Key components:
//   - Sources: FromSlice, FromPull, FromSeq, Repeat lift plain sequences into processes;
//     All ranges over a process as an iter.Seq
//   - Adapters: FromStepFunc and FromStepWithFunc lift closures
//   - Combinators: MapOutput, MapTerminal, AndThen, AndThenWith, Pipe, TerminateOnResidual,
//     TerminateOnErr
//   - Helpers: Sequence (n-ary AndThen), Filter, Effect
//   - Consumers: ForEach, ForEachUntil, Drain, Collect, Take
//   - Driver: a configurable runner adding cancellation, deadlines, step limits,
//     logging, metrics, tracing and events around a process
//
// Design philosophy:
//   - Processes are immutable values (each Step builds the next value)
//   - The Driver is a mutable pointer (configurable runner with observability state)
//
// # Combinators
//
// Mapping changes the values flowing through without touching control flow:
//
//	lengths := stepz.NewMapOutput(words, func(s string) int { return len(s) })
//
// Concatenation runs one process to completion, then another, pairing the terminals:
//
//	both := stepz.NewAndThen(header, body)
//	outputs, term := stepz.Collect(both)
//	// term.First is the header terminal, term.Second the body terminal
//
// Piping feeds the outputs of one transducer into another and stops at the first side
// to terminate, keeping the full state of the other side:
//
//	p := stepz.NewPipe(tokenizer, parser)
//
// Early termination turns an error-shaped output stream into a structural stop:
//
//	lines := stepz.NewTerminateOnErr(readLines)
//	res := stepz.ForEach(lines, handle)
//	if res.Err != nil {
//	    // first failure, nothing after it was produced
//	}
//
// # Error Handling
//
// The core has no error propagation mechanism of its own: failures are ordinary
// output or terminal values. A per-step failure that must stop the process is modeled
// with TerminateOnErr or TerminateOnResidual; a failure reported only at the end is a
// terminal of Result type and needs nothing more than MapTerminal.
//
// The Driver reports interruptions (cancellation, deadline, step limit, callback
// failure, panics) as *Error[O, T], which carries the unconsumed remainder of the
// process whenever it is still valid so the caller may resume it.
package stepz

// Process produces a sequence of outputs of type O followed by exactly one terminal
// value of type T.
//
// Implementors only need to provide Step. Step consumes the receiver: the returned
// Update holds either the continuation together with one output, or the terminal.
// The receiver must never be stepped again once Step has returned.
type Process[O, T any] interface {
	Step() Update[Process[O, T], O, T]
}

// Transducer is a Process that takes an explicit input on every step.
//
// StepWith consumes the receiver and the input. It returns the continuation and one
// output, or the terminal. Like Process.Step, the receiver must never be reused.
type Transducer[I, O, T any] interface {
	StepWith(input I) Update[Transducer[I, O, T], O, T]
}

// Unit is the terminal of sources that carry no residual information.
type Unit struct{}

// Name identifies drivers and logged processes in logs, spans and errors.
//
// Example:
//
//	const ImportName stepz.Name = "import-rows"
//	driver := stepz.NewDriver[Row, stepz.Unit](ImportName)
type Name = string

// advance builds a Next update whose state is the process interface rather than the
// concrete combinator type.
func advance[O, T any](next Process[O, T], output O) Update[Process[O, T], O, T] {
	return Next[Process[O, T], O, T](next, output)
}

// finish builds a Terminate update for a process.
func finish[O, T any](terminal T) Update[Process[O, T], O, T] {
	return Terminate[Process[O, T], O, T](terminal)
}

// advanceWith is advance for transducers.
func advanceWith[I, O, T any](next Transducer[I, O, T], output O) Update[Transducer[I, O, T], O, T] {
	return Next[Transducer[I, O, T], O, T](next, output)
}

// finishWith is finish for transducers.
func finishWith[I, O, T any](terminal T) Update[Transducer[I, O, T], O, T] {
	return Terminate[Transducer[I, O, T], O, T](terminal)
}
