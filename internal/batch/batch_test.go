package batch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()

		items := []string{"c", "a", "b", "d"}
		out, err := Run(t.Context(), New(WithConcurrency(2)), items, func(_ context.Context, s string) (string, error) {
			return strings.ToUpper(s), nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, o := range out {
			if o.Item != items[i] || o.Value != strings.ToUpper(items[i]) {
				t.Errorf("outcome %d = %+v", i, o)
			}
		}
	})

	t.Run("concurrency limit is respected", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		items := make([]string, 12)
		_, err := Run(t.Context(), New(WithConcurrency(3)), items, func(_ context.Context, _ string) (int, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return 0, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 3 {
			t.Errorf("peak concurrency %d exceeds limit 3", peak.Load())
		}
	})

	t.Run("first error is returned", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		_, err := Run(t.Context(), New(WithConcurrency(1)), []string{"ok", "bad", "later"}, func(_ context.Context, s string) (int, error) {
			if s == "bad" {
				return 0, errBoom
			}
			return 1, nil
		})
		if !errors.Is(err, errBoom) {
			t.Errorf("expected errBoom, got %v", err)
		}
	})

	t.Run("continue on error reports failures per item", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		out, err := Run(t.Context(), New(WithContinueOnError(true)), []string{"ok", "bad", "ok2"}, func(_ context.Context, s string) (int, error) {
			if s == "bad" {
				return 0, errBoom
			}
			return len(s), nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(out[1].Err, errBoom) {
			t.Errorf("expected item error, got %v", out[1].Err)
		}
		if out[2].Value != 3 {
			t.Errorf("expected later items to run, got %+v", out[2])
		}
	})

	t.Run("cancelled context stops processing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		var calls atomic.Int32
		_, err := Run(ctx, New(), []string{"a", "b"}, func(_ context.Context, _ string) (int, error) {
			calls.Add(1)
			return 0, nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no calls, got %d", calls.Load())
		}
	})
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	if got := New().Concurrency(); got != DefaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, got)
	}
	if got := New(WithConcurrency(-1)).Concurrency(); got != DefaultConcurrency {
		t.Errorf("negative concurrency should be ignored, got %d", got)
	}
}
