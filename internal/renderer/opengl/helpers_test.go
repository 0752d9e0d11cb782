package opengl

import (
	"testing"
)

func TestUnwindReverseOrder(t *testing.T) {
	var order []int
	var u Unwind
	u.Add(func() { order = append(order, 1) })
	u.Add(func() { order = append(order, 2) })
	u.Add(func() { order = append(order, 3) })

	u.Unwind()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("Expected [3 2 1], got %v", order)
	}
}

func TestUnwindDiscard(t *testing.T) {
	called := false
	var u Unwind
	u.Add(func() { called = true })

	u.Discard()
	u.Unwind()

	if called {
		t.Error("Discarded cleanups should not run")
	}
}

func TestUnwindDeferredSeesLaterCleanups(t *testing.T) {
	called := 0
	func() {
		var u Unwind
		defer u.Unwind()
		u.Add(func() { called++ })
		u.Add(func() { called++ })
	}()

	if called != 2 {
		t.Errorf("Expected 2 cleanups to run, got %d", called)
	}
}

func TestUnwindRunsOnce(t *testing.T) {
	called := 0
	var u Unwind
	u.Add(func() { called++ })

	u.Unwind()
	u.Unwind()

	if called != 1 {
		t.Errorf("Expected cleanup to run once, got %d", called)
	}
}
