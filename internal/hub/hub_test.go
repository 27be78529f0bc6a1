package hub

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeHub is a SignalR JSON hub good enough for the client. "Echo" returns
// its first argument, "Fail" reports an error and "Push" makes the hub
// invoke "Notify" on the client before completing.
type fakeHub struct {
	// noNegotiate answers 404 to negotiate.
	noNegotiate bool
	// failNegotiateAfter fails every negotiate after this many, when > 0.
	failNegotiateAfter int
	// dropConnections drops this many connections right after the handshake.
	dropConnections int
	// closeMessage is sent after the handshake, when set.
	closeMessage string
	// rejectHandshake is returned as the handshake error, when set.
	rejectHandshake string

	negotiations atomic.Int32
	connections  atomic.Int32

	mu  sync.Mutex
	ids []string
}

func (h *fakeHub) handler() http.Handler {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /hub/negotiate", func(w http.ResponseWriter, r *http.Request) {
		n := int(h.negotiations.Add(1))
		if h.noNegotiate {
			http.NotFound(w, r)
			return
		}
		if h.failNegotiateAfter > 0 && n > h.failNegotiateAfter {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		if r.URL.Query().Get("negotiateVersion") != "1" {
			http.Error(w, "bad version", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"connectionId":     "conn-id",
			"connectionToken":  "conn-token",
			"negotiateVersion": 1,
			"availableTransports": []map[string]any{
				{"transport": "WebSockets", "transferFormats": []string{"Text", "Binary"}},
			},
		})
	})

	mux.HandleFunc("GET /hub", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.ids = append(h.ids, r.URL.Query().Get("id"))
		h.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		n := int(h.connections.Add(1))

		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if h.rejectHandshake != "" {
			_ = conn.WriteMessage(websocket.TextMessage, record(map[string]any{"error": h.rejectHandshake}))
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte("{}\x1e"))

		if n <= h.dropConnections {
			return
		}
		if h.closeMessage != "" {
			_ = conn.WriteMessage(websocket.TextMessage, record(map[string]any{"type": 7, "error": h.closeMessage}))
			return
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			for _, rec := range splitRecords(data) {
				var m message
				if err := json.Unmarshal(rec, &m); err != nil {
					continue
				}
				if m.Type != TypeInvocation || m.InvocationID == "" {
					continue
				}
				reply := map[string]any{"type": 3, "invocationId": m.InvocationID}
				switch m.Target {
				case "Echo":
					if len(m.Arguments) > 0 {
						reply["result"] = m.Arguments[0]
					}
				case "Push":
					// Ping and invocation in one frame, then the completion.
					frame := append(record(map[string]any{"type": 6}),
						record(map[string]any{"type": 1, "target": "Notify", "arguments": []string{"hello"}})...)
					_ = conn.WriteMessage(websocket.TextMessage, frame)
				default:
					reply["error"] = "Method does not exist."
				}
				_ = conn.WriteMessage(websocket.TextMessage, record(reply))
			}
		}
	})
	return mux
}

func record(v any) []byte {
	b, _ := json.Marshal(v) //nolint:errchkjson // test fixtures are plain maps
	return append(b, recordSeparator)
}

func startHub(t *testing.T, h *fakeHub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h.handler())
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithHTTPClient(srv.Client()),
		WithTimeout(5 * time.Second),
		WithKeepAlive(0),
	}, opts...)
	c, err := NewClient(srv.URL+"/hub", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"ftp://example.com/hub", "not a url", "https://"} {
		if _, err := NewClient(u); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("NewClient(%q): expected ErrInvalidURL, got %v", u, err)
		}
	}
	for _, u := range []string{"https://example.com/hub", "wss://example.com/hub"} {
		if _, err := NewClient(u); err != nil {
			t.Errorf("NewClient(%q): unexpected error %v", u, err)
		}
	}
}

func TestClientInvoke(t *testing.T) {
	t.Parallel()

	h := &fakeHub{}
	srv := startHub(t, h)
	c := newTestClient(t, srv)

	if err := c.Connect(t.Context()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if c.State() != Connected {
		t.Fatalf("expected Connected, got %v", c.State())
	}

	t.Run("result is returned", func(t *testing.T) {
		got, err := c.Invoke(t.Context(), "Echo", ParseArgument(`{"title":"hi"}`))
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if diff := cmp.Diff(`{"title":"hi"}`, string(got)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("plain text argument is sent as a string", func(t *testing.T) {
		got, err := c.Invoke(t.Context(), "Echo", ParseArgument("hello world"))
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if string(got) != `"hello world"` {
			t.Errorf("expected a JSON string, got %s", got)
		}
	})

	t.Run("hub error wraps ErrInvocation", func(t *testing.T) {
		_, err := c.Invoke(t.Context(), "Missing")
		if !errors.Is(err, ErrInvocation) {
			t.Fatalf("expected ErrInvocation, got %v", err)
		}
		if !strings.Contains(err.Error(), "Method does not exist.") {
			t.Errorf("expected hub message in %q", err)
		}
	})

	t.Run("server invocations reach the handler", func(t *testing.T) {
		got := make(chan string, 1)
		c.On("notify", func(args []json.RawMessage) {
			var s string
			_ = json.Unmarshal(args[0], &s)
			select {
			case got <- s:
			default:
			}
		})
		if _, err := c.Invoke(t.Context(), "Push"); err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		select {
		case s := <-got:
			if s != "hello" {
				t.Errorf("expected hello, got %q", s)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not called")
		}
	})

	h.mu.Lock()
	ids := append([]string(nil), h.ids...)
	h.mu.Unlock()
	if diff := cmp.Diff([]string{"conn-token"}, ids); diff != "" {
		t.Errorf("connection ids mismatch (-want +got):\n%s", diff)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if c.State() != Disconnected {
		t.Errorf("expected Disconnected after Close, got %v", c.State())
	}
	if _, err := c.Invoke(t.Context(), "Echo", 1); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected after Close, got %v", err)
	}
}

func TestClientConnect(t *testing.T) {
	t.Parallel()

	t.Run("hub without negotiate is dialed directly", func(t *testing.T) {
		t.Parallel()

		h := &fakeHub{noNegotiate: true}
		c := newTestClient(t, startHub(t, h))
		if err := c.Connect(t.Context()); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if _, err := c.Invoke(t.Context(), "Echo", 42); err != nil {
			t.Errorf("Invoke: %v", err)
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		if len(h.ids) != 1 || h.ids[0] != "" {
			t.Errorf("expected one connection without id, got %q", h.ids)
		}
	})

	t.Run("rejected handshake fails to connect", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, startHub(t, &fakeHub{rejectHandshake: "unsupported protocol"}))
		err := c.Connect(t.Context())
		if !errors.Is(err, ErrHandshake) {
			t.Fatalf("expected ErrHandshake, got %v", err)
		}
		if got := ConnectionFailed(err); !strings.HasPrefix(got, "Connection failed: ") {
			t.Errorf("unexpected status %q", got)
		}
		if c.State() != Disconnected {
			t.Errorf("expected Disconnected, got %v", c.State())
		}
	})

	t.Run("second connect is rejected", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, startHub(t, &fakeHub{}))
		if err := c.Connect(t.Context()); err != nil {
			t.Fatal(err)
		}
		if err := c.Connect(t.Context()); !errors.Is(err, ErrAlreadyConnected) {
			t.Errorf("expected ErrAlreadyConnected, got %v", err)
		}
	})

	t.Run("unreachable hub fails negotiate", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := NewClient(url+"/hub", WithKeepAlive(0))
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Connect(t.Context()); !errors.Is(err, ErrNegotiate) {
			t.Errorf("expected ErrNegotiate, got %v", err)
		}
	})
}

func waitState(t *testing.T, states <-chan State, want State) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-states:
			if s == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}

func stateRecorder() (Option, <-chan State) {
	ch := make(chan State, 32)
	return WithStateHandler(func(s State) {
		select {
		case ch <- s:
		default:
		}
	}), ch
}

func TestClientReconnect(t *testing.T) {
	t.Parallel()

	policy := ReconnectPolicy{InitialDelay: 10 * time.Millisecond, Multiplier: 2, MaxDelay: 50 * time.Millisecond, MaxAttempts: 3}

	t.Run("dropped connection is restored", func(t *testing.T) {
		t.Parallel()

		h := &fakeHub{dropConnections: 1}
		onState, states := stateRecorder()
		c := newTestClient(t, startHub(t, h), WithReconnect(policy), onState)

		if err := c.Connect(t.Context()); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		waitState(t, states, Reconnecting)
		waitState(t, states, Connected)

		if _, err := c.Invoke(t.Context(), "Echo", "after reconnect"); err != nil {
			t.Fatalf("Invoke after reconnect: %v", err)
		}
		if n := h.connections.Load(); n != 2 {
			t.Errorf("expected 2 connections, got %d", n)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		t.Parallel()

		h := &fakeHub{dropConnections: 1, failNegotiateAfter: 1}
		c := newTestClient(t, startHub(t, h), WithReconnect(policy))

		if err := c.Connect(t.Context()); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		select {
		case <-c.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("client did not give up")
		}
		if err := c.Err(); !errors.Is(err, ErrReconnectFailed) || !errors.Is(err, ErrNegotiate) {
			t.Errorf("expected ErrReconnectFailed wrapping ErrNegotiate, got %v", err)
		}
		if c.State() != Disconnected {
			t.Errorf("expected Disconnected, got %v", c.State())
		}
		if n := h.negotiations.Load(); n != 4 {
			t.Errorf("expected 1 negotiate plus 3 retries, got %d", n)
		}
	})

	t.Run("close message ends the connection", func(t *testing.T) {
		t.Parallel()

		h := &fakeHub{closeMessage: "server shutting down"}
		c := newTestClient(t, startHub(t, h), WithReconnect(policy))

		if err := c.Connect(t.Context()); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		select {
		case <-c.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("client did not stop")
		}
		var closeErr *CloseError
		if !errors.As(c.Err(), &closeErr) || closeErr.Message != "server shutting down" {
			t.Errorf("expected CloseError, got %v", c.Err())
		}
		if n := h.connections.Load(); n != 1 {
			t.Errorf("expected no reconnect, got %d connections", n)
		}
	})
}

func TestNextDelay(t *testing.T) {
	t.Parallel()

	p := ReconnectPolicy{InitialDelay: 2 * time.Second, Multiplier: 2, MaxDelay: 5 * time.Second}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 0},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 3, want: 4 * time.Second},
		{attempt: 4, want: 5 * time.Second},
	}
	for _, tt := range tests {
		if got := NextDelay(p, tt.attempt, nil); got != tt.want {
			t.Errorf("attempt %d: got %v, want %v", tt.attempt, got, tt.want)
		}
	}

	p.Jitter = true
	low := NextDelay(p, 2, func() float64 { return 0 })
	high := NextDelay(p, 2, func() float64 { return 0.999 })
	if low != time.Second || high < 2*time.Second || high >= 3*time.Second {
		t.Errorf("jitter out of range: low=%v high=%v", low, high)
	}
}

func TestSplitRecords(t *testing.T) {
	t.Parallel()

	got := splitRecords([]byte("{}\x1e{\"type\":6}\x1e\x1e"))
	want := [][]byte{[]byte("{}"), []byte(`{"type":6}`)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{
		Disconnected: "Disconnected",
		Connecting:   "Connecting",
		Connected:    "Connected",
		Reconnecting: "Reconnecting",
	} {
		if s.String() != want {
			t.Errorf("%d: got %q, want %q", int(s), s.String(), want)
		}
	}
}
