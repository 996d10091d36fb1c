package stepz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// tagged produces items and terminates with tag.
func tagged(tag string, items ...int) Process[int, string] {
	return NewMapTerminal[int, Unit, string](FromSlice(items), func(Unit) string { return tag })
}

func TestAndThen(t *testing.T) {
	t.Run("Concatenates Outputs And Pairs Terminals", func(t *testing.T) {
		p := NewAndThen(tagged("up", 1, 2), tagged("down", 3, 4, 5))
		outs, term := Collect[int, Pair[string, string]](p)
		if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(Pair[string, string]{First: "up", Second: "down"}, term); diff != "" {
			t.Errorf("terminal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("No Empty Step At The Boundary", func(t *testing.T) {
		var p Process[int, Pair[string, string]] = NewAndThen(tagged("up", 1), tagged("down", 2))
		steps := 0
		for {
			u := p.Step()
			steps++
			next, _, ok := u.Continue()
			if !ok {
				break
			}
			p = next
		}
		if steps != 3 {
			t.Errorf("expected 2 outputs and 1 terminal step, got %d steps", steps)
		}
	})

	t.Run("Phase Tracking", func(t *testing.T) {
		a := NewAndThen(tagged("up", 1), tagged("down", 2, 3))
		if !a.UpstreamActive() {
			t.Fatal("fresh AndThen must have an active upstream")
		}
		next, _, _ := a.Step().Continue()
		if !next.(AndThen[int, string, string]).UpstreamActive() {
			t.Error("upstream still active after its first output")
		}
		next, out, _ := next.Step().Continue()
		if out != 2 {
			t.Errorf("expected first downstream output 2, got %d", out)
		}
		if next.(AndThen[int, string, string]).UpstreamActive() {
			t.Error("upstream must be inactive once downstream produced")
		}
	})

	t.Run("Both Empty", func(t *testing.T) {
		outs, term := Collect[int, Pair[string, string]](NewAndThen(tagged("a"), tagged("b")))
		if len(outs) != 0 {
			t.Errorf("expected no outputs, got %v", outs)
		}
		if term.First != "a" || term.Second != "b" {
			t.Errorf("expected (a, b), got %+v", term)
		}
	})

	t.Run("Downstream Not Stepped Early", func(t *testing.T) {
		down := Once(tagged("down", 9))
		_, _, _ = NewAndThen(tagged("up", 1, 2), Process[int, string](down)).Step().Continue()
		if down.Consumed() {
			t.Error("downstream stepped while upstream was active")
		}
	})
}

func TestAndThenProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("outputs are the concatenation", prop.ForAll(
		func(xs, ys []int) bool {
			outs, _ := Collect[int, Pair[string, string]](NewAndThen(tagged("x", xs...), tagged("y", ys...)))
			want := append(append([]int{}, xs...), ys...)
			return cmp.Equal(want, outs, cmpopts.EquateEmpty())
		},
		gen.SliceOf(gen.Int()),
		gen.SliceOf(gen.Int()),
	))

	properties.Property("concatenation is associative up to terminal pairing", prop.ForAll(
		func(xs, ys, zs []int) bool {
			left := NewMapTerminal[int, Pair[Pair[string, string], string], [3]string](
				NewAndThen[int, Pair[string, string], string](NewAndThen(tagged("x", xs...), tagged("y", ys...)), tagged("z", zs...)),
				func(p Pair[Pair[string, string], string]) [3]string { return [3]string{p.First.First, p.First.Second, p.Second} },
			)
			right := NewMapTerminal[int, Pair[string, Pair[string, string]], [3]string](
				NewAndThen[int, string, Pair[string, string]](tagged("x", xs...), NewAndThen(tagged("y", ys...), tagged("z", zs...))),
				func(p Pair[string, Pair[string, string]]) [3]string { return [3]string{p.First, p.Second.First, p.Second.Second} },
			)
			lo, lt := Collect[int, [3]string](left)
			ro, rt := Collect[int, [3]string](right)
			return cmp.Equal(lo, ro, cmpopts.EquateEmpty()) && lt == rt
		},
		gen.SliceOf(gen.Int()),
		gen.SliceOf(gen.Int()),
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}

// stepAll feeds inputs to tr until it terminates or the inputs run out.
func stepAll[I, O, T any](tr Transducer[I, O, T], inputs ...I) (outs []O, terminal T, done bool, used int) {
	for _, in := range inputs {
		used++
		u := tr.StepWith(in)
		next, out, ok := u.Continue()
		if !ok {
			terminal, _ = u.Terminal()
			return outs, terminal, true, used
		}
		outs = append(outs, out)
		tr = next
	}
	return outs, terminal, false, used
}

func TestAndThenWith(t *testing.T) {
	// offset adds 100 to its input and stops with the count of inputs seen on zero.
	offset := func() Transducer[int, int, int] {
		seen := 0
		return FromStepWithFunc(func(in int) (int, int, bool) {
			seen++
			if in == 0 {
				return 0, seen, true
			}
			return in + 100, 0, false
		})
	}

	t.Run("Terminating Input Goes Downstream", func(t *testing.T) {
		tr := NewAndThenWith[int, int, string, int](doubler(), offset())
		outs, term, done, used := stepAll[int, int, Pair[string, int]](tr, 1, 2, -3, 4, 0, 9)
		if !done {
			t.Fatal("expected terminal")
		}
		if used != 5 {
			t.Errorf("expected 5 inputs consumed, got %d", used)
		}
		if diff := cmp.Diff([]int{2, 4, 97, 104}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(Pair[string, int]{First: "negative", Second: 3}, term); diff != "" {
			t.Errorf("terminal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Both Terminate On One Input", func(t *testing.T) {
		tr := NewAndThenWith[int, int, string, string](doubler(), doubler())
		outs, term, done, used := stepAll[int, int, Pair[string, string]](tr, -1, 5)
		if !done || used != 1 {
			t.Fatalf("expected termination on the first input, done=%v used=%d", done, used)
		}
		if len(outs) != 0 {
			t.Errorf("expected no outputs, got %v", outs)
		}
		if diff := cmp.Diff(Pair[string, string]{First: "negative", Second: "negative"}, term); diff != "" {
			t.Errorf("terminal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Downstream Idle While Upstream Active", func(t *testing.T) {
		calls := 0
		down := FromStepWithFunc(func(in int) (int, Unit, bool) {
			calls++
			return in, Unit{}, false
		})
		var tr Transducer[int, int, Pair[string, Unit]] = NewAndThenWith[int, int, string, Unit](doubler(), down)
		for _, in := range []int{1, 2, 3} {
			next, _, ok := tr.StepWith(in).Continue()
			if !ok {
				t.Fatal("unexpected terminal")
			}
			tr = next
		}
		if calls != 0 {
			t.Errorf("downstream stepped %d times while upstream was active", calls)
		}
		if !tr.(AndThenWith[int, int, string, Unit]).UpstreamActive() {
			t.Error("expected upstream still active")
		}
		next, out, ok := tr.StepWith(-1).Continue()
		if !ok || out != -1 || calls != 1 {
			t.Errorf("expected downstream to answer the terminating input, got %d ok=%v calls=%d", out, ok, calls)
		}
		if next.(AndThenWith[int, int, string, Unit]).UpstreamActive() {
			t.Error("expected downstream phase")
		}
	})
}
