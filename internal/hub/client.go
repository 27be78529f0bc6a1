package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultKeepAlive    = 15 * time.Second
	maxNegotiateHops    = 5
	maxNegotiateBodyLen = 1 << 20
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for negotiate requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReconnect sets the automatic reconnect policy.
func WithReconnect(p ReconnectPolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithTimeout bounds the dial and handshake of each connection attempt and
// every write.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithKeepAlive sets how often a ping is sent while connected. Zero
// disables pings.
func WithKeepAlive(d time.Duration) Option {
	return func(c *Client) {
		c.keepAlive = d
	}
}

// WithStateHandler registers fn to be called after every state change.
// fn must not block.
func WithStateHandler(fn func(State)) Option {
	return func(c *Client) {
		c.onState = fn
	}
}

type completion struct {
	result json.RawMessage
	err    error
}

// Client is a SignalR hub connection. It is safe for concurrent use.
type Client struct {
	url        *url.URL
	httpClient *http.Client
	dialer     *websocket.Dialer
	logger     *slog.Logger
	policy     ReconnectPolicy
	timeout    time.Duration
	keepAlive  time.Duration
	onState    func(State)

	writeMu sync.Mutex

	mu       sync.Mutex
	conn     *websocket.Conn
	state    State
	pending  map[string]chan completion
	handlers map[string]func([]json.RawMessage)
	err      error
	cancel   context.CancelFunc
	done     chan struct{}

	nextID atomic.Uint64
	wg     sync.WaitGroup
}

// NewClient creates a client for the hub at rawURL. It does not connect.
func NewClient(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	c := &Client{
		url:        u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
		policy:     DefaultReconnectPolicy(),
		timeout:    defaultTimeout,
		keepAlive:  defaultKeepAlive,
		pending:    make(map[string]chan completion),
		handlers:   make(map[string]func([]json.RawMessage)),
		done:       closedChan(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dialer = &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.timeout,
	}
	return c, nil
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// On registers fn for invocations of target sent by the server.
func (c *Client) On(target string, fn func(args []json.RawMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[strings.ToLower(target)] = fn
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed when the connection ends for good, either by Close, by a
// close message from the server or after reconnecting failed.
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Err returns why the connection ended. It is nil after Close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.notify(s)
}

func (c *Client) notify(s State) {
	if c.onState != nil {
		c.onState(s)
	}
}

// Connect negotiates, dials and completes the handshake. ctx bounds the
// connection attempt only; the connection lives until Close.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.state = Connecting
	c.mu.Unlock()
	c.notify(Connecting)

	c.logger.Debug("connecting to hub", "url", c.url.String())
	conn, rest, err := c.dial(ctx)
	if err != nil {
		c.setState(Disconnected)
		return err
	}

	life, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.cancel = cancel
	c.done = done
	c.err = nil
	c.state = Connected
	c.mu.Unlock()
	c.notify(Connected)
	c.logger.Info("connected to hub", "url", c.url.String())

	c.wg.Add(2)
	go c.run(life, conn, rest, done)
	go c.pingLoop(life)
	return nil
}

// Close stops the connection and waits for background work to finish.
// Pending invocations fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel, conn := c.cancel, c.conn
	c.cancel, c.conn = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = conn.Close()
	}
	c.wg.Wait()
	c.failPending(ErrClosed)

	c.mu.Lock()
	changed := c.state != Disconnected
	c.state = Disconnected
	c.mu.Unlock()
	if changed {
		c.notify(Disconnected)
	}
	return err
}

// Invoke calls a hub method and waits for its completion. The result is
// the raw JSON returned by the method, or nil for void methods.
func (c *Client) Invoke(ctx context.Context, target string, args ...any) (json.RawMessage, error) {
	id := strconv.FormatUint(c.nextID.Add(1)-1, 10)
	ch := make(chan completion, 1)

	c.mu.Lock()
	conn := c.conn
	if c.state != Connected || conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	c.pending[id] = ch
	c.mu.Unlock()

	if args == nil {
		args = []any{}
	}
	rec, err := encodeRecord(invocationMessage{Type: TypeInvocation, InvocationID: id, Target: target, Arguments: args})
	if err != nil {
		c.removePending(id)
		return nil, fmt.Errorf("encode invocation: %w", err)
	}
	if err := c.write(conn, rec); err != nil {
		c.removePending(id)
		return nil, fmt.Errorf("send invocation: %w", err)
	}
	c.logger.Debug("invoked hub method", "target", target, "invocation_id", id)

	select {
	case <-ctx.Done():
		c.removePending(id)
		return nil, ctx.Err()
	case res := <-ch:
		return res.result, res.err
	}
}

// Send calls a hub method without waiting for a result.
func (c *Client) Send(_ context.Context, target string, args ...any) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == Connected
	c.mu.Unlock()
	if !connected || conn == nil {
		return ErrNotConnected
	}

	if args == nil {
		args = []any{}
	}
	rec, err := encodeRecord(invocationMessage{Type: TypeInvocation, Target: target, Arguments: args})
	if err != nil {
		return fmt.Errorf("encode invocation: %w", err)
	}
	return c.write(conn, rec)
}

func (c *Client) write(conn *websocket.Conn, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) removePending(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) failPending(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.pending {
		ch <- completion{err: err}
		delete(c.pending, id)
	}
}

// run reads from the connection until it ends for good.
func (c *Client) run(ctx context.Context, conn *websocket.Conn, rest [][]byte, done chan struct{}) {
	defer c.wg.Done()
	defer close(done)

	for {
		err := c.readLoop(conn, rest)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		c.failPending(ErrConnectionLost)

		var closeErr *CloseError
		if (errors.As(err, &closeErr) && !closeErr.AllowReconnect) || c.policy.MaxAttempts <= 0 {
			c.finish(err)
			return
		}

		c.logger.Warn("hub connection lost, reconnecting", "error", err)
		conn, rest, err = c.reconnect(ctx, err)
		if err != nil {
			if ctx.Err() == nil {
				c.finish(err)
			}
			return
		}
	}
}

// finish records why the connection ended and stops background work.
func (c *Client) finish(err error) {
	c.mu.Lock()
	c.conn = nil
	c.err = err
	c.state = Disconnected
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.notify(Disconnected)
	c.logger.Warn("hub connection closed", "error", err)
}

func (c *Client) readLoop(conn *websocket.Conn, rest [][]byte) error {
	for _, rec := range rest {
		if err := c.dispatch(rec); err != nil {
			return err
		}
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		for _, rec := range splitRecords(data) {
			if err := c.dispatch(rec); err != nil {
				return err
			}
		}
	}
}

// dispatch handles one record. It returns a *CloseError for close messages.
func (c *Client) dispatch(rec []byte) error {
	var m message
	if err := json.Unmarshal(rec, &m); err != nil {
		c.logger.Warn("skipping malformed hub message", "error", err)
		return nil
	}

	switch m.Type {
	case TypeCompletion:
		c.mu.Lock()
		ch, ok := c.pending[m.InvocationID]
		delete(c.pending, m.InvocationID)
		c.mu.Unlock()
		if !ok {
			return nil
		}
		if m.Error != "" {
			ch <- completion{err: fmt.Errorf("%w: %s", ErrInvocation, m.Error)}
			return nil
		}
		ch <- completion{result: m.Result}
	case TypeInvocation:
		c.mu.Lock()
		fn := c.handlers[strings.ToLower(m.Target)]
		c.mu.Unlock()
		if fn == nil {
			c.logger.Debug("no handler for hub method", "target", m.Target)
			return nil
		}
		fn(m.Arguments)
	case TypePing:
	case TypeClose:
		return &CloseError{Message: m.Error, AllowReconnect: m.AllowReconnect}
	default:
		c.logger.Debug("ignoring hub message", "type", int(m.Type))
	}
	return nil
}

func (c *Client) reconnect(ctx context.Context, cause error) (*websocket.Conn, [][]byte, error) {
	c.setState(Reconnecting)

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		delay := NextDelay(c.policy, attempt, rand.Float64)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, ctx.Err()
		case <-timer.C:
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		conn, rest, err := c.dial(attemptCtx)
		cancel()
		if err != nil {
			c.logger.Debug("reconnect attempt failed", "attempt", attempt, "error", err)
			cause = err
			continue
		}

		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			_ = conn.Close()
			return nil, nil, ctx.Err()
		}
		c.conn = conn
		c.state = Connected
		c.mu.Unlock()
		c.notify(Connected)
		c.logger.Info("reconnected to hub", "attempt", attempt)
		return conn, rest, nil
	}
	return nil, nil, fmt.Errorf("%w after %d attempts: %w", ErrReconnectFailed, c.policy.MaxAttempts, cause)
}

func (c *Client) pingLoop(ctx context.Context) {
	defer c.wg.Done()
	if c.keepAlive <= 0 {
		return
	}

	ping, err := encodeRecord(pingMessage{Type: TypePing})
	if err != nil {
		return
	}
	ticker := time.NewTicker(c.keepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			conn := c.conn
			connected := c.state == Connected
			c.mu.Unlock()
			if connected && conn != nil {
				if err := c.write(conn, ping); err != nil {
					c.logger.Debug("ping failed", "error", err)
				}
			}
		}
	}
}

// dial negotiates, opens the WebSocket and performs the handshake. It
// returns any records received along with the handshake response.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, [][]byte, error) {
	target, header, err := c.negotiate(ctx)
	if err != nil {
		return nil, nil, err
	}

	conn, _, err := c.dialer.DialContext(ctx, target, header) //nolint:bodyclose // the response body is handled by the dialer
	if err != nil {
		return nil, nil, fmt.Errorf("dial hub: %w", err)
	}

	rest, err := c.handshake(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, rest, nil
}

func (c *Client) handshake(ctx context.Context, conn *websocket.Conn) ([][]byte, error) {
	req, err := encodeRecord(handshakeRequest{Protocol: "json", Version: 1})
	if err != nil {
		return nil, err
	}
	if err := c.write(conn, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, err
	}

	records := splitRecords(data)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrHandshake)
	}
	var resp handshakeResponse
	if err := json.Unmarshal(records[0], &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrHandshake, resp.Error)
	}
	return records[1:], nil
}

// negotiate returns the WebSocket URL to dial. A hub that answers 404 to
// negotiate is dialed directly.
func (c *Client) negotiate(ctx context.Context) (string, http.Header, error) {
	header := http.Header{}
	base := c.url

	for range maxNegotiateHops {
		endpoint := *base
		endpoint.Scheme = httpScheme(base.Scheme)
		endpoint.Path = strings.TrimSuffix(base.Path, "/") + "/negotiate"
		q := endpoint.Query()
		q.Set("negotiateVersion", "1")
		endpoint.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
		if err != nil {
			return "", nil, err
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrNegotiate, err)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxNegotiateBodyLen))
		_ = resp.Body.Close()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrNegotiate, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			c.logger.Debug("hub has no negotiate endpoint, dialing directly")
			return websocketURL(base, ""), header, nil
		}
		if resp.StatusCode != http.StatusOK {
			return "", nil, fmt.Errorf("%w: %s", ErrNegotiate, resp.Status)
		}

		var nr negotiateResponse
		if err := json.Unmarshal(body, &nr); err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrNegotiate, err)
		}
		if nr.Error != "" {
			return "", nil, fmt.Errorf("%w: %s", ErrNegotiate, nr.Error)
		}
		if nr.URL != "" {
			next, err := url.Parse(nr.URL)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %w", ErrNegotiate, err)
			}
			if nr.AccessToken != "" {
				header.Set("Authorization", "Bearer "+nr.AccessToken)
			}
			base = next
			continue
		}
		if !nr.supportsWebSockets() {
			return "", nil, ErrNoWebSockets
		}

		id := nr.ConnectionToken
		if id == "" {
			id = nr.ConnectionID
		}
		return websocketURL(base, id), header, nil
	}
	return "", nil, ErrTooManyRedirects
}

func httpScheme(s string) string {
	switch s {
	case "ws":
		return "http"
	case "wss":
		return "https"
	}
	return s
}

func websocketURL(u *url.URL, id string) string {
	out := *u
	switch u.Scheme {
	case "http":
		out.Scheme = "ws"
	case "https":
		out.Scheme = "wss"
	}
	if id != "" {
		q := out.Query()
		q.Set("id", id)
		out.RawQuery = q.Encode()
	}
	return out.String()
}
