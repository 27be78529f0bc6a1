package revert

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("starts at the initial value", func(t *testing.T) {
		t.Parallel()
		v := New(false, time.Second)
		if v.Get() {
			t.Error("expected initial value false")
		}
		if v.Pending() {
			t.Error("expected no pending revert")
		}
	})

	t.Run("reverts after the delay", func(t *testing.T) {
		t.Parallel()
		v := New(false, 20*time.Millisecond)
		v.Set(true)
		if !v.Get() {
			t.Fatal("expected value to be set")
		}
		waitFor(t, func() bool { return !v.Get() })
		if v.Pending() {
			t.Error("expected no pending revert after reverting")
		}
	})

	t.Run("setting the initial value schedules nothing", func(t *testing.T) {
		t.Parallel()
		v := New("", 10*time.Millisecond)
		v.Set("")
		if v.Pending() {
			t.Error("expected no pending revert")
		}
	})

	t.Run("a new set cancels the pending revert", func(t *testing.T) {
		t.Parallel()
		v := New("", 200*time.Millisecond)
		v.Set("first")
		time.Sleep(120 * time.Millisecond)
		v.Set("second")
		time.Sleep(120 * time.Millisecond)
		if got := v.Get(); got != "second" {
			t.Errorf("expected the second value to still be visible, got %q", got)
		}
		waitFor(t, func() bool { return v.Get() == "" })
	})

	t.Run("stop keeps the current value", func(t *testing.T) {
		t.Parallel()
		v := New(0, 20*time.Millisecond)
		v.Set(5)
		v.Stop()
		time.Sleep(60 * time.Millisecond)
		if got := v.Get(); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("callback runs after revert", func(t *testing.T) {
		t.Parallel()
		done := make(chan string, 1)
		v := New("idle", 10*time.Millisecond, WithOnRevert(func(s string) { done <- s }))
		v.Set("busy")
		select {
		case got := <-done:
			if got != "idle" {
				t.Errorf("callback got %q", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("callback not invoked")
		}
	})
}
