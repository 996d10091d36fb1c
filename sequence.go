package stepz

// Sequence runs any number of processes of the same shape one after another.
// It is the n-ary form of AndThen: outputs are the concatenation of every stage's
// outputs and the terminal collects every stage's terminal in order.
//
// Like AndThen, the step in which one stage terminates already produces the next
// stage's first output, so no step of a Sequence is empty. Stages that terminate
// immediately contribute only their terminal.
//
// Example:
//
//	stages := stepz.NewSequence(extract, transform, load)
//	terms := stepz.ForEach(stages, emit) // []Report, one per stage
type Sequence[O, T any] struct {
	head  Process[O, T]
	rest  []Process[O, T]
	terms []T
}

// NewSequence creates a Sequence over stages. With no stages it terminates at once
// with an empty terminal slice.
func NewSequence[O, T any](stages ...Process[O, T]) Sequence[O, T] {
	if len(stages) == 0 {
		return Sequence[O, T]{}
	}
	return Sequence[O, T]{
		head:  stages[0],
		rest:  stages[1:],
		terms: make([]T, 0, len(stages)),
	}
}

// Step implements Process.
func (s Sequence[O, T]) Step() Update[Process[O, []T], O, []T] {
	head, rest, terms := s.head, s.rest, s.terms
	for head != nil {
		u := head.Step()
		if next, out, ok := u.Continue(); ok {
			return advance[O, []T](Sequence[O, T]{head: next, rest: rest, terms: terms}, out)
		}
		t, _ := u.Terminal()
		// Full slice expression: a shared continuation must never see this append.
		terms = append(terms[:len(terms):len(terms)], t)
		if len(rest) == 0 {
			head = nil
			break
		}
		head, rest = rest[0], rest[1:]
	}
	if terms == nil {
		terms = []T{}
	}
	return finish[O](terms)
}

// Stage returns the 1-based number of the active stage, or 0 once every stage has
// terminated.
func (s Sequence[O, T]) Stage() int {
	if s.head == nil {
		return 0
	}
	return len(s.terms) + 1
}
