package stepz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// countdown produces n-1, ..., 0 and terminates with the string "liftoff".
type countdown int

func (c countdown) Step() Update[Process[int, string], int, string] {
	if c <= 0 {
		return finish[int]("liftoff")
	}
	return advance[int, string](c-1, int(c-1))
}

func TestForEach(t *testing.T) {
	t.Run("Visits Outputs In Order", func(t *testing.T) {
		var got []int
		term := ForEach[int, string](countdown(3), func(o int) {
			got = append(got, o)
		})
		if diff := cmp.Diff([]int{2, 1, 0}, got); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if term != "liftoff" {
			t.Errorf("expected liftoff, got %q", term)
		}
	})

	t.Run("Immediate Terminal", func(t *testing.T) {
		calls := 0
		term := ForEach[int, string](countdown(0), func(int) { calls++ })
		if calls != 0 {
			t.Errorf("expected no calls, got %d", calls)
		}
		if term != "liftoff" {
			t.Errorf("expected liftoff, got %q", term)
		}
	})
}

func TestForEachUntil(t *testing.T) {
	t.Run("Stops On False", func(t *testing.T) {
		var seen []int
		rest, _, done := ForEachUntil[int, string](countdown(5), func(o int) bool {
			seen = append(seen, o)
			return o != 3
		})
		if done {
			t.Fatal("expected early stop")
		}
		if diff := cmp.Diff([]int{4, 3}, seen); diff != "" {
			t.Errorf("seen mismatch (-want +got):\n%s", diff)
		}
		outs, term := Collect(rest)
		if diff := cmp.Diff([]int{2, 1, 0}, outs); diff != "" {
			t.Errorf("remainder mismatch (-want +got):\n%s", diff)
		}
		if term != "liftoff" {
			t.Errorf("expected liftoff, got %q", term)
		}
	})

	t.Run("Runs To Terminal", func(t *testing.T) {
		rest, term, done := ForEachUntil[int, string](countdown(2), func(int) bool { return true })
		if !done || rest != nil || term != "liftoff" {
			t.Errorf("expected (nil, liftoff, true), got (%v, %q, %v)", rest, term, done)
		}
	})
}

func TestDrain(t *testing.T) {
	if term := Drain[int, string](countdown(10)); term != "liftoff" {
		t.Errorf("expected liftoff, got %q", term)
	}
}

func TestTake(t *testing.T) {
	t.Run("Fewer Than Available", func(t *testing.T) {
		outs, rest, _, done := Take[int, string](countdown(4), 2)
		if done {
			t.Fatal("expected remainder")
		}
		if diff := cmp.Diff([]int{3, 2}, outs); diff != "" {
			t.Errorf("outs mismatch (-want +got):\n%s", diff)
		}
		remaining, _ := Collect(rest)
		if diff := cmp.Diff([]int{1, 0}, remaining); diff != "" {
			t.Errorf("remainder mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("More Than Available", func(t *testing.T) {
		outs, rest, term, done := Take[int, string](countdown(2), 5)
		if !done || rest != nil || term != "liftoff" {
			t.Errorf("expected terminal, got (%v, %q, %v)", rest, term, done)
		}
		if diff := cmp.Diff([]int{1, 0}, outs); diff != "" {
			t.Errorf("outs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Zero Does Not Step", func(t *testing.T) {
		p := Once[int, string](countdown(1))
		outs, rest, _, done := Take[int, string](p, 0)
		if done || len(outs) != 0 || p.Consumed() {
			t.Error("Take(0) must not step the process")
		}
		if rest != Process[int, string](p) {
			t.Error("Take(0) must return the process unchanged")
		}
	})
}

func TestCollectProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("collect of a slice source is the slice", prop.ForAll(
		func(xs []int) bool {
			outs, _ := Collect[int, Unit](FromSlice(xs))
			return cmp.Equal(xs, outs, cmpopts.EquateEmpty())
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("take then collect the rest is collect", prop.ForAll(
		func(xs []int, n int) bool {
			head, rest, _, done := Take[int, Unit](FromSlice(xs), n)
			all := head
			if !done {
				tail, _ := Collect(rest)
				all = append(all, tail...)
			}
			return cmp.Equal(xs, all, cmpopts.EquateEmpty())
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
