package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type composerState struct {
	Protocol string `json:"protocol"`
	Domain   string `json:"domain"`
}

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if s.Path() != filepath.Join(dir, FileName) {
			t.Errorf("unexpected path %q", s.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
	})
}

func TestStoreGetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		var got composerState
		if err := s.Get(t.Context(), KeyURLComposer, &got); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := t.Context()
		if err := s.Set(ctx, KeyURLComposer, composerState{Protocol: "http", Domain: "a.example"}); err != nil {
			t.Fatal(err)
		}
		want := composerState{Protocol: "https", Domain: "b.example"}
		if err := s.Set(ctx, KeyURLComposer, want); err != nil {
			t.Fatal(err)
		}

		var got composerState
		if err := s.Get(ctx, KeyURLComposer, &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}

		ts, err := s.UpdatedAt(ctx, KeyURLComposer)
		if err != nil {
			t.Fatal(err)
		}
		if ts.IsZero() {
			t.Error("expected a non-zero update time")
		}
	})

	t.Run("values survive reopening", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Set(t.Context(), KeyIframer, map[string]string{"url": "https://example.com"}); err != nil {
			t.Fatal(err)
		}
		_ = s.Close()

		s, err = Open(dir, Options{})
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		defer s.Close()

		var got map[string]string
		if err := s.Get(t.Context(), KeyIframer, &got); err != nil {
			t.Fatal(err)
		}
		if got["url"] != "https://example.com" {
			t.Errorf("unexpected value %v", got)
		}
	})

	t.Run("concurrent writers leave one of the written values", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := t.Context()
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Set(ctx, KeyIframer, i)
			}()
		}
		wg.Wait()

		var got int
		if err := s.Get(ctx, KeyIframer, &got); err != nil {
			t.Fatal(err)
		}
		if got < 0 || got > 9 {
			t.Errorf("unexpected value %d", got)
		}
	})
}

func TestStoreDeleteAndKeys(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := t.Context()
	for _, k := range []string{KeyURLComposer, KeyIframer} {
		if err := s.Set(ctx, k, k); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{KeyIframer, KeyURLComposer}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, KeyIframer); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "never-written"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
	var v string
	if err := s.Get(ctx, KeyIframer, &v); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
