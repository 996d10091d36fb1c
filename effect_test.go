package stepz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEffect(t *testing.T) {
	t.Run("Observes Every Output", func(t *testing.T) {
		var seen []int
		outs, term := Collect[int, string](NewEffect[int, string](countdown(3), func(n int) {
			seen = append(seen, n)
		}))
		if diff := cmp.Diff([]int{2, 1, 0}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(outs, seen); diff != "" {
			t.Errorf("seen mismatch (-want +got):\n%s", diff)
		}
		if term != "liftoff" {
			t.Errorf("expected liftoff, got %q", term)
		}
	})

	t.Run("Runs Only When Stepped", func(t *testing.T) {
		calls := 0
		p := NewEffect[int, string](countdown(3), func(int) { calls++ })
		if calls != 0 {
			t.Fatalf("expected no calls before stepping, got %d", calls)
		}
		u := p.Step()
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
		next, _, _ := u.Continue()
		next.Step()
		next.Step()
		if calls != 3 {
			t.Errorf("expected a call per step of a shared continuation, got %d", calls)
		}
	})

	t.Run("Not Called On Terminal", func(t *testing.T) {
		calls := 0
		Drain[int, string](NewEffect[int, string](countdown(0), func(int) { calls++ }))
		if calls != 0 {
			t.Errorf("expected no calls, got %d", calls)
		}
	})
}
