package stepz

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMapOutput(t *testing.T) {
	t.Run("Transforms Every Output", func(t *testing.T) {
		p := NewMapOutput[int, string, string](countdown(3), strconv.Itoa)
		outs, term := Collect[string, string](p)
		if diff := cmp.Diff([]string{"2", "1", "0"}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if term != "liftoff" {
			t.Errorf("expected terminal unchanged, got %q", term)
		}
	})

	t.Run("Function Not Called On Terminal", func(t *testing.T) {
		calls := 0
		p := NewMapOutput[int, int, string](countdown(0), func(o int) int { calls++; return o })
		Drain[int, string](p)
		if calls != 0 {
			t.Errorf("expected no calls, got %d", calls)
		}
	})
}

func TestMapTerminal(t *testing.T) {
	t.Run("Transforms Terminal Once", func(t *testing.T) {
		calls := 0
		p := NewMapTerminal[int, string, int](countdown(2), func(s string) int { calls++; return len(s) })
		outs, term := Collect[int, int](p)
		if diff := cmp.Diff([]int{1, 0}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if term != len("liftoff") {
			t.Errorf("expected %d, got %d", len("liftoff"), term)
		}
		if calls != 1 {
			t.Errorf("expected exactly one call, got %d", calls)
		}
	})
}

func TestMapLaws(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("mapping with identity changes nothing", prop.ForAll(
		func(xs []int) bool {
			outs, _ := Collect[int, Unit](NewMapOutput[int, int, Unit](FromSlice(xs), func(x int) int { return x }))
			return cmp.Equal(xs, outs, cmpopts.EquateEmpty())
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("mapping twice is mapping the composition", prop.ForAll(
		func(xs []int) bool {
			f := func(x int) int { return x + 1 }
			g := func(x int) string { return strconv.Itoa(x * 3) }

			twice := NewMapOutput[int, string, Unit](NewMapOutput[int, int, Unit](FromSlice(xs), f), g)
			once := NewMapOutput[int, string, Unit](FromSlice(xs), func(x int) string { return g(f(x)) })

			a, _ := Collect[string, Unit](twice)
			b, _ := Collect[string, Unit](once)
			return cmp.Equal(a, b, cmpopts.EquateEmpty())
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("terminal mapping leaves outputs alone", prop.ForAll(
		func(xs []int) bool {
			outs, term := Collect[int, int](NewMapTerminal[int, Unit, int](FromSlice(xs), func(Unit) int { return len(xs) }))
			return cmp.Equal(xs, outs, cmpopts.EquateEmpty()) && term == len(xs)
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}
